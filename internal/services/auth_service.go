package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"gradevision/internal/middleware"
	"gradevision/internal/models"
)

// AuthService hashes passwords and mints session tokens. Tokens are
// stateless; logout is client-side deletion only.
type AuthService interface {
	HashPassword(plain string) (string, error)
	CheckPassword(hash, plain string) error
	IssueToken(user *models.User) (string, error)
}

type authService struct {
	tokenTTL time.Duration
}

func NewAuthService(tokenTTL time.Duration) AuthService {
	return &authService{tokenTTL: tokenTTL}
}

func (s *authService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	claims := &middleware.Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(middleware.JWTKey)
}
