package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradevision/internal/authz"
	"gradevision/internal/models"
	"gradevision/internal/repositories"
)

// stubEmailService records the last code instead of dialing SMTP.
type stubEmailService struct {
	lastEmail   string
	lastCode    string
	lastPurpose string
	failNext    bool
}

func (s *stubEmailService) SendOtpEmail(email, code, purpose string) error {
	if s.failNext {
		s.failNext = false
		return errors.New("smtp unreachable")
	}
	s.lastEmail, s.lastCode, s.lastPurpose = email, code, purpose
	return nil
}

type userServiceFixture struct {
	users  repositories.UserRepository
	emails *stubEmailService
	svc    UserService
}

func newUserServiceFixture(t *testing.T, lockDuration time.Duration) *userServiceFixture {
	t.Helper()
	users := repositories.NewMemoryUserRepository()
	emails := &stubEmailService{}
	otp := NewOtpService(repositories.NewMemoryOtpRepository(), 5*time.Minute, 5)
	auth := NewAuthService(time.Hour)
	svc := NewUserService(
		users, otp, emails, auth,
		[]string{"demo@gradevision.edu", "admin@gradevision.edu"},
		5, lockDuration,
	)
	return &userServiceFixture{users: users, emails: emails, svc: svc}
}

func (f *userServiceFixture) register(t *testing.T, email, password string) *models.User {
	t.Helper()
	user, token, err := f.svc.Register(&models.RegisterRequest{
		Email: email, Password: password, FirstName: "Test", LastName: "User",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)
	created := f.register(t, "u@example.com", "secret123")
	assert.Equal(t, authz.RoleStudent, created.Role)

	user, token, err := f.svc.Login("u@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, created.ID, user.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)
	f.register(t, "u@example.com", "secret123")

	_, _, err := f.svc.Register(&models.RegisterRequest{
		Email: "u@example.com", Password: "other456", FirstName: "X", LastName: "Y",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterInvalidRoleFallsBackToStudent(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)
	user, _, err := f.svc.Register(&models.RegisterRequest{
		Email: "u@example.com", Password: "secret123",
		FirstName: "T", LastName: "U", Role: "superuser",
	})
	require.NoError(t, err)
	assert.Equal(t, authz.RoleStudent, user.Role)
}

func TestLoginUnknownEmailIsGeneric(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)
	_, _, err := f.svc.Login("ghost@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestLoginLockoutAfterFiveFailures(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)
	f.register(t, "u@example.com", "secret123")

	for i := 1; i <= 4; i++ {
		_, _, err := f.svc.Login("u@example.com", "wrong")
		var invalid *InvalidPasswordError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 5-i, invalid.Remaining)
	}

	// fifth failure trips the lock
	_, _, err := f.svc.Login("u@example.com", "wrong")
	var locked *LockedError
	require.ErrorAs(t, err, &locked)
	assert.True(t, locked.JustLocked)
	assert.Equal(t, "Account locked due to too many failed attempts. Please try again in 15 minutes.", locked.Error())

	// while locked, even the correct password is refused
	_, _, err = f.svc.Login("u@example.com", "secret123")
	require.ErrorAs(t, err, &locked)
	assert.False(t, locked.JustLocked)
	assert.Contains(t, locked.Error(), "Account is locked due to too many failed attempts.")
}

func TestLoginLockExpiresLazily(t *testing.T) {
	f := newUserServiceFixture(t, 20*time.Millisecond)
	f.register(t, "u@example.com", "secret123")

	for i := 0; i < 5; i++ {
		f.svc.Login("u@example.com", "wrong")
	}
	_, _, err := f.svc.Login("u@example.com", "secret123")
	var locked *LockedError
	require.ErrorAs(t, err, &locked)

	time.Sleep(30 * time.Millisecond)

	// same request that hits an elapsed lock clears it and proceeds
	user, token, err := f.svc.Login("u@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Zero(t, user.FailedLoginCount)
}

func TestLoginSuccessResetsCounter(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)
	f.register(t, "u@example.com", "secret123")

	for i := 0; i < 3; i++ {
		f.svc.Login("u@example.com", "wrong")
	}
	_, _, err := f.svc.Login("u@example.com", "secret123")
	require.NoError(t, err)

	// the budget is back to a full five
	_, _, err = f.svc.Login("u@example.com", "wrong")
	var invalid *InvalidPasswordError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 4, invalid.Remaining)
}

func TestDemoLoginBypassesEverything(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)

	for i := 0; i < 10; i++ {
		user, token, err := f.svc.Login("demo@gradevision.edu", "any-password-at-all")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.Equal(t, "demo-user-id", user.ID)
		assert.Equal(t, authz.RoleStudent, user.Role)
	}

	admin, _, err := f.svc.Login("admin@gradevision.edu", "nope")
	require.NoError(t, err)
	assert.Equal(t, authz.RoleAdmin, admin.Role)
}

func TestSendOtpSignupRejectsExistingEmail(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)
	f.register(t, "u@example.com", "secret123")

	err := f.svc.SendOtp("u@example.com", models.PurposeSignup)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSendOtpForgotPasswordPreconditions(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)

	err := f.svc.SendOtp("demo@gradevision.edu", models.PurposeForgotPassword)
	assert.ErrorIs(t, err, ErrDemoAccount)

	err = f.svc.SendOtp("ghost@example.com", models.PurposeForgotPassword)
	assert.ErrorIs(t, err, ErrUserNotFound)

	f.register(t, "u@example.com", "secret123")
	err = f.svc.SendOtp("u@example.com", models.PurposeForgotPassword)
	require.NoError(t, err)
	assert.Equal(t, "u@example.com", f.emails.lastEmail)
	assert.Len(t, f.emails.lastCode, 6)
	assert.Equal(t, models.PurposeForgotPassword, f.emails.lastPurpose)
}

func TestSendOtpDeliveryFailure(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)
	f.emails.failNext = true
	err := f.svc.SendOtp("new@example.com", models.PurposeSignup)
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestSendThenVerifyOtpRoundTrip(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)
	require.NoError(t, f.svc.SendOtp("new@example.com", models.PurposeSignup))

	verified, reason := f.svc.VerifyOtp("new@example.com", f.emails.lastCode, models.PurposeSignup)
	assert.True(t, verified, reason)
}

func TestResetPasswordClearsLock(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)
	f.register(t, "u@example.com", "secret123")

	for i := 0; i < 5; i++ {
		f.svc.Login("u@example.com", "wrong")
	}
	var locked *LockedError
	_, _, err := f.svc.Login("u@example.com", "secret123")
	require.ErrorAs(t, err, &locked)

	require.NoError(t, f.svc.ResetPassword("u@example.com", "fresh456"))

	// new credentials work immediately; the lock is gone
	_, token, err := f.svc.Login("u@example.com", "fresh456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = f.svc.Login("u@example.com", "secret123")
	var invalid *InvalidPasswordError
	assert.ErrorAs(t, err, &invalid)
}

func TestResetPasswordUnknownEmail(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)
	err := f.svc.ResetPassword("ghost@example.com", "fresh456")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)
	user := f.register(t, "u@example.com", "secret123")

	err := f.svc.ChangePassword(user.ID, "nope", "fresh456")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, f.svc.ChangePassword(user.ID, "secret123", "fresh456"))
	_, _, err = f.svc.Login("u@example.com", "fresh456")
	assert.NoError(t, err)
}

// Registration does not require a verified signup OTP first: the check and
// the account creation are separate requests with no ticket between them.
func TestRegisterSucceedsWithoutOtpVerification(t *testing.T) {
	f := newUserServiceFixture(t, 15*time.Minute)
	user, token, err := f.svc.Register(&models.RegisterRequest{
		Email: "unverified@example.com", Password: "secret123",
		FirstName: "No", LastName: "Otp",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotNil(t, user)
}

func TestLockedErrorMessages(t *testing.T) {
	e := &LockedError{RemainingMinutes: 1}
	assert.Equal(t, "Account is locked due to too many failed attempts. Please try again in 1 minute.", e.Error())
	e = &LockedError{RemainingMinutes: 7}
	assert.Equal(t, "Account is locked due to too many failed attempts. Please try again in 7 minutes.", e.Error())
}
