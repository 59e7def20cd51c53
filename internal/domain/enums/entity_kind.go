package enums

type EntityKind string

const (
	EntityKindAccount EntityKind = "account"
	EntityKindJob     EntityKind = "job"
	EntityKindReview  EntityKind = "review"
	EntityKindReport  EntityKind = "report"
)

func ValidEntityKind(value string) bool {
	switch EntityKind(value) {
	case EntityKindAccount, EntityKindJob, EntityKindReview, EntityKindReport:
		return true
	}
	return false
}

// ValidStatusFor reports whether status is a member of the status enum of the
// given entity kind. Membership is the only constraint: there is no
// forbidden-transition matrix, so any legal value can follow any other.
func ValidStatusFor(kind EntityKind, status string) bool {
	switch kind {
	case EntityKindAccount:
		return ValidAccountStatus(status)
	case EntityKindJob:
		return ValidJobStatus(status)
	case EntityKindReview:
		return ValidReviewStatus(status)
	case EntityKindReport:
		return ValidReportStatus(status)
	}
	return false
}
