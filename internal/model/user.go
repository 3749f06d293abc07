package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleCEO   = "ceo"
)

const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
	PasswordMinLen = 6
)

// IsValidRole reports whether role is accepted by the users_role_check constraint.
func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleCEO:
		return true
	}
	return false
}

// User represents a user in the system
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         string    `json:"role"`
	StationCode  *string   `json:"station_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserView is the public projection of a User returned by the API.
type UserView struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	StationCode *string   `json:"station_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// View strips credentials from the user.
func (u *User) View() UserView {
	return UserView{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		StationCode: u.StationCode,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
