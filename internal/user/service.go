package user

import (
	"context"
	"fmt"
	"strings"

	"maison-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (string, User, error)
	Login(ctx context.Context, input LoginInput) (string, User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeactivateAccount(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (string, User, error) {
	log := logger.FromCtx(ctx)

	if strings.TrimSpace(input.Username) == "" {
		return "", User{}, fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Email) == "" {
		return "", User{}, fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	}
	if len(input.Password) < 8 {
		return "", User{}, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, input.Username, input.Email, hashed, string(RoleCustomer))
	if err != nil {
		log.Error("failed to create user", zap.String("email", input.Email), zap.Error(err))
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Int64("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register completed",
		zap.Int64("user_id", u.ID),
		zap.String("email", input.Email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (string, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		log.Debug("login: email not found", zap.String("email", input.Email))
		return "", User{}, ErrInvalidCredentials
	}

	if u.Status != StatusActive {
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(input.Password, u.PasswordHash) {
		log.Debug("login: password mismatch", zap.String("email", input.Email))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	return token, u, err
}

func (s *service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *service) DeactivateAccount(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx)

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		log.Error("failed to deactivate account", zap.Int64("user_id", id), zap.Error(err))
		return err
	}

	log.Info("account deactivated", zap.Int64("user_id", id))
	return nil
}
