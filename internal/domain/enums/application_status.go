package enums

type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusReviewed    ApplicationStatus = "reviewed"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusInterviewed ApplicationStatus = "interviewed"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusOffered     ApplicationStatus = "offered"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
	ApplicationStatusWithdrawn   ApplicationStatus = "withdrawn"
)

func ValidApplicationStatus(value string) bool {
	switch ApplicationStatus(value) {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusShortlisted,
		ApplicationStatusInterviewed, ApplicationStatusRejected, ApplicationStatusOffered,
		ApplicationStatusAccepted, ApplicationStatusWithdrawn:
		return true
	}
	return false
}
