package enums

type AccountStatus string

const (
	AccountStatusPending   AccountStatus = "pending"
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusInactive  AccountStatus = "inactive"
)

func ValidAccountStatus(value string) bool {
	switch AccountStatus(value) {
	case AccountStatusPending, AccountStatusActive, AccountStatusSuspended, AccountStatusInactive:
		return true
	}
	return false
}
