package enums

type NotificationType string

const (
	NotificationTypeAccountStatus     NotificationType = "account_status"
	NotificationTypeJobStatus         NotificationType = "job_status"
	NotificationTypeReviewStatus      NotificationType = "review_status"
	NotificationTypeReviewReceived    NotificationType = "review_received"
	NotificationTypeApplicationNew    NotificationType = "application_new"
	NotificationTypeApplicationStatus NotificationType = "application_status"
)
