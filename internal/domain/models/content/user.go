package content

import "slices"

// SuperuserRole is the role granting full access.
const SuperuserRole = "superuser"

// User is an account on the content platform.
type User struct {
	ID    string   `json:"id" db:"id"`
	Name  string   `json:"name" db:"name"`
	Email string   `json:"email" db:"email"`
	Roles []string `json:"roles"`
}

// IsSuperuser reports whether the user holds the superuser role.
func (u *User) IsSuperuser() bool {
	return slices.Contains(u.Roles, SuperuserRole)
}
