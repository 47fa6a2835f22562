package model

import (
	"time"
)

// User is the authenticated account profile.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	CabinetName string    `json:"cabinet_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoginRequest is the request to authenticate.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the request to create an account.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	CabinetName string `json:"cabinet_name,omitempty"`
}

// AuthResponse is the backend's answer to login, register and refresh calls.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}
