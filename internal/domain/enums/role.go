package enums

type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

func ValidRole(value string) bool {
	switch Role(value) {
	case RoleSeeker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}
