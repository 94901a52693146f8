package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/766ms/Glam-rent-v1/app/models"
	"github.com/766ms/Glam-rent-v1/app/repositories"
	"github.com/766ms/Glam-rent-v1/pkg/apperr"
	"github.com/766ms/Glam-rent-v1/pkg/auth"
	"github.com/766ms/Glam-rent-v1/pkg/middleware"
)

// AuthService handles registration, login and token-to-identity
// resolution for the request middleware.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates an account and signs the new user in. A duplicate
// email is a conflict, not an internal error.
func (s *AuthService) Register(name, email, password string) (models.User, string, error) {
	exists, err := s.users.ExistsByEmail(email)
	if err != nil {
		return models.User{}, "", err
	}
	if exists {
		return models.User{}, "", apperr.New(apperr.Conflict, "Email is already registered")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{Name: name, Email: email, Password: hash}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns a signed token. Unknown email
// and wrong password produce the same error so the response never leaks
// which half was wrong.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, "", apperr.New(apperr.Unauthorized, "Invalid credentials")
	}
	if err != nil {
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", apperr.New(apperr.Unauthorized, "Invalid credentials")
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Resolve maps a token subject to a request identity. Implements
// middleware.IdentityResolver.
func (s *AuthService) Resolve(_ context.Context, userID uint) (middleware.Identity, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return middleware.Identity{}, apperr.Wrap(apperr.Unauthorized, err, "Invalid credentials")
	}
	return middleware.Identity{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, nil
}
