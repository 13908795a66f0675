package models

import "time"

// OTP purposes. Codes are scoped per purpose so a signup code
// cannot be replayed for a password reset.
const (
	PurposeSignup         = "signup"
	PurposeForgotPassword = "forgot-password"
)

func IsValidPurpose(p string) bool {
	return p == PurposeSignup || p == PurposeForgotPassword
}

// OtpCode is one pending one-time code. At most one live record
// exists per (email, purpose) pair.
type OtpCode struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Purpose   string    `json:"purpose"`
	Code      string    `json:"-"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
