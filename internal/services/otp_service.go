package services

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/google/uuid"

	"gradevision/internal/models"
	"gradevision/internal/repositories"
	"gradevision/internal/utils"
)

const (
	defaultOtpTTL         = 5 * time.Minute
	defaultMaxOtpAttempts = 5
)

// OtpService owns the lifecycle of one-time codes: at most one live code
// per (email, purpose); a code dies on successful verification, on expiry,
// or when the attempt budget is exhausted.
type OtpService interface {
	Generate(email, purpose string) (string, error)
	Verify(email, code, purpose string) (bool, string)
	Cleanup() (int64, error)
}

type otpService struct {
	repo        repositories.OtpRepository
	ttl         time.Duration
	maxAttempts int
	keys        *utils.KeyedMutex
}

func NewOtpService(repo repositories.OtpRepository, ttl time.Duration, maxAttempts int) OtpService {
	if ttl == 0 {
		ttl = defaultOtpTTL
	}
	if maxAttempts == 0 {
		maxAttempts = defaultMaxOtpAttempts
	}
	return &otpService{
		repo:        repo,
		ttl:         ttl,
		maxAttempts: maxAttempts,
		keys:        utils.NewKeyedMutex(),
	}
}

// always exactly 6 digits, no leading zero
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", 100000+n.Int64()), nil
}

func (s *otpService) Generate(email, purpose string) (string, error) {
	unlock := s.keys.Lock(email + "|" + purpose)
	defer unlock()

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	now := time.Now()
	otp := &models.OtpCode{
		ID:        uuid.NewString(),
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		Attempts:  0,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	// Replace drops any previous code for this key
	if err := s.repo.Replace(otp); err != nil {
		return "", err
	}
	log.Printf("[otp][generate] email=%q purpose=%q expires_at=%s", email, purpose, otp.ExpiresAt.Format(time.RFC3339))
	return otp.Code, nil
}

// Verify reports (valid, reason). Check order matters: missing record,
// then expiry, then attempt budget, then code equality.
func (s *otpService) Verify(email, code, purpose string) (bool, string) {
	unlock := s.keys.Lock(email + "|" + purpose)
	defer unlock()

	otp, err := s.repo.GetByKey(email, purpose)
	if err != nil {
		log.Printf("[otp][verify] load failed email=%q purpose=%q: %v", email, purpose, err)
		return false, "No OTP found. Please request a new one."
	}
	if otp == nil {
		return false, "No OTP found. Please request a new one."
	}

	if time.Now().After(otp.ExpiresAt) {
		if err := s.repo.Delete(email, purpose); err != nil {
			log.Printf("[otp][verify] delete expired failed: %v", err)
		}
		return false, "OTP has expired. Please request a new one."
	}

	if otp.Attempts >= s.maxAttempts {
		if err := s.repo.Delete(email, purpose); err != nil {
			log.Printf("[otp][verify] delete exhausted failed: %v", err)
		}
		return false, "Too many incorrect attempts. Please request a new OTP."
	}

	if otp.Code != code {
		attempts, err := s.repo.IncrementAttempts(otp.ID)
		if err != nil {
			log.Printf("[otp][verify] increment attempts failed: %v", err)
			attempts = otp.Attempts + 1
		}
		remaining := s.maxAttempts - attempts
		return false, fmt.Sprintf("Invalid OTP. %s remaining.", pluralize(remaining, "attempt"))
	}

	// single-use: consumed the instant it verifies
	if err := s.repo.Delete(email, purpose); err != nil {
		log.Printf("[otp][verify] delete consumed failed: %v", err)
	}
	return true, ""
}

// Cleanup is advisory housekeeping; Verify self-enforces expiry.
func (s *otpService) Cleanup() (int64, error) {
	return s.repo.DeleteExpired(time.Now())
}
