// Package account handles registration of users and the identity that
// is passed to everything acting on a user's behalf.
package account

// Role is a user's access level.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Identity is the signed-in user as seen by the rest of the app.
type Identity struct {
	UserID  string
	Name    string
	Contact string // mobile number, unique per user
	Email   string
	Role    Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Anonymous reports whether no user is signed in.
func (i Identity) Anonymous() bool {
	return i.UserID == ""
}
