package models

import "time"

// User roles
const (
	RoleAdmin     = "ADMIN"
	RoleCS        = "CS"
	RoleInspector = "INSPECTOR"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	Department   string    `json:"department"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpsertUserRequest represents the request body for creating or updating a user
type UpsertUserRequest struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Password   string `json:"password,omitempty"` // Optional on update
	Role       string `json:"role"`
	IsActive   *bool  `json:"isActive,omitempty"`
	Department string `json:"department"`
}
