package services

import (
	"context"
	"crypto/subtle"
	"log"
	"strings"

	"portops-backend/internal/auth"
	"portops-backend/internal/models"
	"portops-backend/internal/repositories"
)

// UserService handles credential checks and account administration. The
// user table still carries a few legacy plaintext passwords from the old
// system; a successful plaintext login upgrades the row to bcrypt.
type UserService struct {
	Users *repositories.UserRepository
	JWT   *auth.JWTManager
}

func NewUserService(users *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{Users: users, JWT: jwtManager}
}

// Login checks credentials and issues a token. A locked account is
// reported distinctly from a bad password.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.Users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !s.verifyPassword(ctx, user, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountLocked
	}

	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) verifyPassword(ctx context.Context, user *models.User, password string) bool {
	if strings.HasPrefix(user.PasswordHash, "$2") {
		return auth.VerifyPassword(user.PasswordHash, password)
	}

	// legacy plaintext row
	if subtle.ConstantTimeCompare([]byte(user.PasswordHash), []byte(password)) != 1 {
		return false
	}
	if hash, err := auth.HashPassword(password); err == nil {
		if err := s.Users.SetPasswordHash(ctx, user.ID, hash); err != nil {
			log.Printf("[Auth] password upgrade for %s failed: %v", user.Username, err)
		} else {
			log.Printf("[Auth] upgraded legacy password for %s", user.Username)
		}
	}
	return true
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.Users.List(ctx)
}

// Upsert creates or updates an account. Password is optional on update;
// when present it is hashed before it ever reaches the repository.
func (s *UserService) Upsert(ctx context.Context, req *models.UpsertUserRequest) (*models.User, error) {
	user := &models.User{
		ID:         req.ID,
		Username:   strings.TrimSpace(req.Username),
		Role:       req.Role,
		Department: req.Department,
		IsActive:   true,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := s.Users.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return s.Users.Get(ctx, user.ID)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.Users.Delete(ctx, id)
}
