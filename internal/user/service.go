package user

import (
	"context"
	"errors"
	"strings"

	"erp-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, email, name, password string) (string, *User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, email, name, password string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u := &User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hashed,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		if strings.Contains(err.Error(), "users_email_key") {
			return "", nil, ErrEmailExists
		}
		return "", nil, err
	}

	token, err := GenerateJWT(u.ID, u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("register service completed",
		zap.String("user_id", u.ID),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("email not found", zap.String("email", email))
		return "", nil, errors.New("invalid email or password")
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Warn("password mismatch", zap.String("email", email))
		return "", nil, errors.New("invalid email or password")
	}

	token, err := GenerateJWT(u.ID, u.Email)
	return token, u, err
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}
