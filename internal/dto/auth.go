package dto

import "time"

// RegisterRequest is the payload for creating a new account with credentials.
type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// LoginRequest is the payload for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful registration, login, or OAuth exchange.
type AuthResponse struct {
	Token                     string       `json:"token"`
	ExpiresAt                 time.Time    `json:"expiresAt"`
	User                      UserResponse `json:"user"`
	RequiresEmailVerification bool         `json:"requiresEmailVerification,omitempty"`
}

// VerifyEmailRequest carries the code entered by the user.
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// VerifyEmailResponse reports the outcome of a verification attempt.
type VerifyEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ResendVerificationRequest asks for a fresh verification code.
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResendVerificationResponse reports whether a new code was dispatched.
type ResendVerificationResponse struct {
	Success bool `json:"success"`
}

// VerificationStatusResponse reports the verification state for the caller.
type VerificationStatusResponse struct {
	EmailVerified     bool `json:"emailVerified"`
	HasUnverifiedCode bool `json:"hasUnverifiedCode"`
}

// ExchangeCodeRequest is the payload carrying a Google authorization code.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
