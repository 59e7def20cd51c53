package enums

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusResolved ReportStatus = "resolved"
)

func ValidReportStatus(value string) bool {
	switch ReportStatus(value) {
	case ReportStatusPending, ReportStatusResolved:
		return true
	}
	return false
}

type ReportContentType string

const (
	ReportContentJob     ReportContentType = "job"
	ReportContentReview  ReportContentType = "review"
	ReportContentUser    ReportContentType = "user"
	ReportContentMessage ReportContentType = "message"
	ReportContentComment ReportContentType = "comment"
)

func ValidReportContentType(value string) bool {
	switch ReportContentType(value) {
	case ReportContentJob, ReportContentReview, ReportContentUser, ReportContentMessage, ReportContentComment:
		return true
	}
	return false
}
