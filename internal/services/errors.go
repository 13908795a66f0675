package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken         = errors.New("User already exists with this email")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrUserNotFound       = errors.New("No account found with this email")
	ErrDemoAccount        = errors.New("Password reset is not available for demo accounts")
	ErrWrongPassword      = errors.New("Current password is incorrect")
	ErrDeliveryFailed     = errors.New("Failed to send verification email. Please try again.")
	ErrStudentIDTaken     = errors.New("A student with this student ID already exists")
)

// LockedError is returned while an account lockout is in effect (HTTP 423).
type LockedError struct {
	RemainingMinutes int
	JustLocked       bool
}

func (e *LockedError) Error() string {
	if e.JustLocked {
		return fmt.Sprintf("Account locked due to too many failed attempts. Please try again in %d minutes.", e.RemainingMinutes)
	}
	return fmt.Sprintf("Account is locked due to too many failed attempts. Please try again in %s.",
		pluralize(e.RemainingMinutes, "minute"))
}

// InvalidPasswordError reports a wrong password while the account is still
// unlocked, with the remaining attempt budget (HTTP 401).
type InvalidPasswordError struct {
	Remaining int
}

func (e *InvalidPasswordError) Error() string {
	return fmt.Sprintf("Invalid password. %s remaining.", pluralize(e.Remaining, "attempt"))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
