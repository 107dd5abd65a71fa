package service

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "careteam/internal/errors"
	"careteam/internal/repository"
)

const tokenTTL = 24 * time.Hour

type AuthService interface {
	Register(name, email, phone, password string) (string, error)
	Login(email, password string) (string, error)
	Logout(tokenString string) error
}

type authService struct {
	repo repository.UserRepository
}

func NewAuthService(repo repository.UserRepository) AuthService {
	return &authService{repo: repo}
}

func (s *authService) Register(name, email, phone, password string) (string, error) {
	verr := apperrors.NewValidationError()
	if name == "" {
		verr.Add("name", "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		verr.Add("email", "a valid email is required")
	}
	if len(password) < 8 {
		verr.Add("password", "password must be at least 8 characters")
	}
	if verr.HasErrors() {
		return "", verr
	}

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apperrors.NewValidationError().Add("email", "email is already registered")
	}

	user, err := s.repo.Create(name, email, phone, password)
	if err != nil {
		return "", err
	}
	return s.issueToken(user.ID, user.Email)
}

func (s *authService) Login(email, password string) (string, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}
	return s.issueToken(user.ID, user.Email)
}

// Logout revokes the token's jti so the middleware rejects it from now on.
func (s *authService) Logout(tokenString string) error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return errors.New("JWT_SECRET not set")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid token claims")
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return errors.New("token has no jti")
	}
	if err := s.repo.RevokeToken(jti); err != nil {
		return &apperrors.CollaboratorUnavailable{Collaborator: "user store", Err: err}
	}
	return nil
}

func (s *authService) issueToken(userID int64, email string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
