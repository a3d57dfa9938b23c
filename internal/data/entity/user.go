package entity

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// Valid reports whether the role belongs to the closed set.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role may mutate other users' content.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleModerator
}

type User struct {
	Base
	Username    string   `db:"username"`
	Email       string   `db:"email"`
	FirstName   *string  `db:"first_name"`
	LastName    *string  `db:"last_name"`
	Bio         *string  `db:"bio"`
	Role        UserRole `db:"role"`
	IsSuperuser bool     `db:"is_superuser"`
	// Bcrypt hash of the emailed confirmation code. Empty until signup
	// issues one.
	CodeHash string `db:"code_hash"`
}

// IsAdmin treats superusers as admins regardless of the stored role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}
