package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"gradevision/internal/authz"
	"gradevision/internal/models"
	"gradevision/internal/repositories"
	"gradevision/internal/utils"
)

const (
	defaultMaxLoginAttempts = 5
	defaultLockDuration     = 15 * time.Minute
)

// UserService orchestrates registration, login with progressive lockout,
// OTP issuance/verification and password reset. It is the only consumer
// of the credential and OTP stores.
type UserService interface {
	Register(req *models.RegisterRequest) (*models.User, string, error)
	Login(email, password string) (*models.User, string, error)
	SendOtp(email, purpose string) error
	VerifyOtp(email, code, purpose string) (bool, string)
	ResetPassword(email, newPassword string) error
	ChangePassword(userID, currentPassword, newPassword string) error
	GetUserByID(id string) (*models.User, error)
	UpdateProfile(id, firstName, lastName, avatar string) (*models.User, error)
}

type userService struct {
	repo         repositories.UserRepository
	otp          OtpService
	emails       EmailService
	auth         AuthService
	demoAccounts map[string]struct{}
	maxAttempts  int
	lockDuration time.Duration
	keys         *utils.KeyedMutex
}

func NewUserService(
	repo repositories.UserRepository,
	otp OtpService,
	emails EmailService,
	auth AuthService,
	demoAccounts []string,
	maxAttempts int,
	lockDuration time.Duration,
) UserService {
	if maxAttempts == 0 {
		maxAttempts = defaultMaxLoginAttempts
	}
	if lockDuration == 0 {
		lockDuration = defaultLockDuration
	}
	demos := map[string]struct{}{}
	for _, email := range demoAccounts {
		demos[email] = struct{}{}
	}
	return &userService{
		repo:         repo,
		otp:          otp,
		emails:       emails,
		auth:         auth,
		demoAccounts: demos,
		maxAttempts:  maxAttempts,
		lockDuration: lockDuration,
		keys:         utils.NewKeyedMutex(),
	}
}

// accountKind is resolved once per request so demo bypass stays a single
// branch instead of email comparisons scattered across flows.
func (s *userService) accountKind(email string) authz.AccountKind {
	if _, ok := s.demoAccounts[email]; ok {
		return authz.KindDemo
	}
	return authz.KindNormal
}

func demoUser(email string) *models.User {
	first, role := "Demo", authz.RoleStudent
	if strings.HasPrefix(email, "admin@") {
		first, role = "Admin", authz.RoleAdmin
	}
	return &models.User{
		ID:        "demo-user-id",
		Email:     email,
		FirstName: first,
		LastName:  "User",
		Role:      role,
	}
}

func (s *userService) Register(req *models.RegisterRequest) (*models.User, string, error) {
	// Note: the service trusts that the signup OTP was verified in the
	// preceding verify-otp request; there is no ticket linking the two calls.
	existing, err := s.repo.GetByEmail(req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("register lookup: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	role := req.Role
	if role == "" || !authz.IsValidRole(role) {
		role = authz.RoleStudent
	}
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[auth][register] created user id=%s role=%s", user.ID, user.Role)
	return user, token, nil
}

func (s *userService) Login(email, password string) (*models.User, string, error) {
	if s.accountKind(email) == authz.KindDemo {
		u := demoUser(email)
		token, err := s.auth.IssueToken(u)
		if err != nil {
			return nil, "", err
		}
		log.Printf("[auth][login] demo bypass email=%q", email)
		return u, token, nil
	}

	unlock := s.keys.Lock(email)
	defer unlock()

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("login lookup: %w", err)
	}
	if user == nil {
		// must not reveal whether the email is registered
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	if user.LockedUntil != nil {
		if user.LockedUntil.After(now) {
			remaining := int(time.Until(*user.LockedUntil).Minutes()) + 1
			return nil, "", &LockedError{RemainingMinutes: remaining}
		}
		// lock elapsed: clear silently and re-evaluate this same request
		if err := s.repo.ResetLoginState(user.ID); err != nil {
			return nil, "", err
		}
		user.FailedLoginCount = 0
		user.LockedUntil = nil
	}

	if err := s.auth.CheckPassword(user.PasswordHash, password); err != nil {
		count, ierr := s.repo.IncrementFailedLogins(user.ID)
		if ierr != nil {
			return nil, "", ierr
		}
		if count >= s.maxAttempts {
			until := now.Add(s.lockDuration)
			if lerr := s.repo.Lock(user.ID, until, s.maxAttempts); lerr != nil {
				return nil, "", lerr
			}
			log.Printf("[auth][login] locked user id=%s until=%s", user.ID, until.Format(time.RFC3339))
			return nil, "", &LockedError{
				RemainingMinutes: int(s.lockDuration.Minutes()),
				JustLocked:       true,
			}
		}
		return nil, "", &InvalidPasswordError{Remaining: s.maxAttempts - count}
	}

	if user.FailedLoginCount > 0 {
		if err := s.repo.ResetLoginState(user.ID); err != nil {
			return nil, "", err
		}
		user.FailedLoginCount = 0
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[auth][login] success user id=%s", user.ID)
	return user, token, nil
}

func (s *userService) SendOtp(email, purpose string) error {
	switch purpose {
	case models.PurposeSignup:
		existing, err := s.repo.GetByEmail(email)
		if err != nil {
			return fmt.Errorf("send-otp lookup: %w", err)
		}
		if existing != nil {
			return ErrEmailTaken
		}
	case models.PurposeForgotPassword:
		if s.accountKind(email) == authz.KindDemo {
			return ErrDemoAccount
		}
		existing, err := s.repo.GetByEmail(email)
		if err != nil {
			return fmt.Errorf("send-otp lookup: %w", err)
		}
		if existing == nil {
			return ErrUserNotFound
		}
	}

	code, err := s.otp.Generate(email, purpose)
	if err != nil {
		return err
	}
	if err := s.emails.SendOtpEmail(email, code, purpose); err != nil {
		log.Printf("[auth][send-otp] delivery failed email=%q purpose=%q: %v", email, purpose, err)
		return ErrDeliveryFailed
	}
	return nil
}

func (s *userService) VerifyOtp(email, code, purpose string) (bool, string) {
	return s.otp.Verify(email, code, purpose)
}

func (s *userService) ResetPassword(email, newPassword string) error {
	// Like registration, this trusts that the forgot-password OTP was
	// verified in a prior request.
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("reset lookup: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	// UpdatePassword also clears the failure counter and any lock
	if err := s.repo.UpdatePassword(user.ID, hash); err != nil {
		return err
	}
	log.Printf("[auth][reset-password] password replaced user id=%s", user.ID)
	return nil
}

func (s *userService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("change-password lookup: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := s.auth.CheckPassword(user.PasswordHash, currentPassword); err != nil {
		return ErrWrongPassword
	}
	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user.ID, hash)
}

func (s *userService) GetUserByID(id string) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) UpdateProfile(id, firstName, lastName, avatar string) (*models.User, error) {
	return s.repo.UpdateProfile(id, firstName, lastName, avatar)
}
