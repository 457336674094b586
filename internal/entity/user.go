package entity

import "time"

const (
	RoleUser      = "USER"
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

// ValidRole reports whether the given role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Password  string    `db:"password"`
	Role      string    `db:"role"`
	Avatar    string    `db:"avatar"`
	Bio       string    `db:"bio"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UserLoginData is the identity carried by an access token and stored in
// request Locals by the token middleware.
type UserLoginData struct {
	ID    string
	Email string
	Role  string
}

// UserWithPostCount annotates a user with their live published-post count.
type UserWithPostCount struct {
	User
	PostCount int `db:"post_count"`
}

// UserStats aggregates user totals by role.
type UserStats struct {
	TotalUsers     int `db:"total_users"`
	AdminUsers     int `db:"admin_users"`
	ModeratorUsers int `db:"moderator_users"`
	RegularUsers   int `db:"regular_users"`
}
