package services

import (
	"context"
	"errors"
	"strings"

	"github.com/valeriaulyamaeva/resilience-tracker/internal/auth"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/database"
	"github.com/valeriaulyamaeva/resilience-tracker/models"
	"go.uber.org/zap"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	City     string `json:"city"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   int    `json:"userId"`
}

// Register creates an account. Username and email clashes are reported as
// distinct errors, checked in that order.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return nil, invalid("username, password and email are required")
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	switch role {
	case "":
		role = models.RoleIndividual
	case models.RoleIndividual, models.RoleFamily:
	default:
		return nil, invalid("unknown role %q", req.Role)
	}

	if taken, err := s.store.UsernameExists(ctx, req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.store.EmailExists(ctx, req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Password: hash,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     role,
		Name:     req.Name,
		City:     req.City,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		case errors.Is(err, database.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info("user registered", zap.Int("user_id", user.ID), zap.String("role", user.Role))
	return user, nil
}

// Login checks the credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, Username: user.Username, Role: user.Role, UserID: user.ID}, nil
}
