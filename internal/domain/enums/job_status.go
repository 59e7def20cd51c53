package enums

type JobStatus string

const (
	JobStatusPending  JobStatus = "pending"
	JobStatusActive   JobStatus = "active"
	JobStatusInactive JobStatus = "inactive"
	JobStatusExpired  JobStatus = "expired"
	JobStatusRejected JobStatus = "rejected"
)

func ValidJobStatus(value string) bool {
	switch JobStatus(value) {
	case JobStatusPending, JobStatusActive, JobStatusInactive, JobStatusExpired, JobStatusRejected:
		return true
	}
	return false
}
