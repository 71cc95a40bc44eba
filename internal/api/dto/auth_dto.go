package dto

import "time"

// RegisterRequest payload for customer signup.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VendorRegisterRequest payload for vendor signup.
type VendorRegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	KitchenName string `json:"kitchen_name"`
	City        string `json:"city"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints. The field names
// mirror the persisted session fields the front end reads directly.
type AuthResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"userRole"`
	Email     string    `json:"userEmail"`
	Username  string    `json:"username"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PasswordResetRequest starts the reset flow.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirm completes the reset flow.
type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}
