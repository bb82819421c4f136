package service

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 72 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginDisabled      = errors.New("admin login is not configured")
)

// AuthService authenticates the single site administrator against the
// configured credentials and issues signed session tokens. Sessions live in
// a signed JWT rather than process memory, so restarts and multiple
// replicas do not invalidate or leak them.
type AuthService struct {
	adminUsername string
	passwordHash  []byte
	jwtSecret     string
}

func NewAuthService(adminUsername, adminPassword, jwtSecret string) (*AuthService, error) {
	svc := &AuthService{
		adminUsername: adminUsername,
		jwtSecret:     jwtSecret,
	}

	if adminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		svc.passwordHash = hash
	}

	return svc, nil
}

// SessionTTL is the lifetime of an issued session token.
func (s *AuthService) SessionTTL() time.Duration {
	return sessionTTL
}

func (s *AuthService) Login(username, password string) (string, error) {
	if len(s.passwordHash) == 0 {
		return "", ErrLoginDisabled
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))

	if !usernameMatch || passwordErr != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken()
}

func (s *AuthService) generateToken() (string, error) {
	claims := jwt.MapClaims{
		"username": s.adminUsername,
		"role":     "admin",
		"exp":      time.Now().Add(sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
}
