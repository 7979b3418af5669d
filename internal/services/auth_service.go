package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emploirapide/api/internal/auth"
	"github.com/emploirapide/api/internal/models"
	pgrepo "github.com/emploirapide/api/internal/repositories/postgres"
	"github.com/emploirapide/api/internal/utils"
)

type SignupInput struct {
	Email       string
	Password    string
	Name        string
	Role        string
	CompanyName string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

type authService struct {
	users  pgrepo.UserRepository
	tokens *auth.TokenService
}

func NewAuthService(users pgrepo.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, in SignupInput) (*models.User, string, error) {
	const op = "AuthService.Signup"

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "email, password and name are required", nil)
	}
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "role must be candidate or recruiter", nil)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == models.RoleRecruiter {
		user.CompanyName = strings.TrimSpace(in.CompanyName)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, "", utils.E(utils.CodeConflict, op, "an account with this email already exists", err)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to create account", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "AuthService.Login"

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid email or password", err)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to load account", err)
	}

	if utils.CheckPassword(user.PasswordHash, password) != nil {
		return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return user, token, nil
}
