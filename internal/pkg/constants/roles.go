package constants

const (
	RoleUser    = "user"
	RoleCompany = "company"
	RoleAdmin   = "admin"
)

// ValidRoles is the set of roles accepted at registration.
var ValidRoles = []string{RoleUser, RoleCompany, RoleAdmin}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
