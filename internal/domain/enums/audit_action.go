package enums

type AuditAction string

const (
	AuditActionRegister          AuditAction = "register"
	AuditActionLogin             AuditAction = "login"
	AuditActionLogout            AuditAction = "logout"
	AuditActionCreate            AuditAction = "create"
	AuditActionUpdate            AuditAction = "update"
	AuditActionDelete            AuditAction = "delete"
	AuditActionStatusChange      AuditAction = "status_change"
	AuditActionBulkStatusChange  AuditAction = "bulk_status_change"
	AuditActionApplicationStatus AuditAction = "application_status"
	AuditActionClearActivityLog  AuditAction = "clear_activity_log"
)
