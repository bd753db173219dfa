package tag

import (
	"context"
	"fmt"

	"erp-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Tag names shorter than this are rejected at the boundary and here.
const minNameLen = 4

type Service interface {
	List(ctx context.Context) ([]*Tag, error)
	Create(ctx context.Context, name string) (*Tag, error)
	Update(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Tag, error) {
	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []*Tag{}
	}
	return tags, nil
}

func (s *service) Create(ctx context.Context, name string) (*Tag, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", name),
	)

	if len(name) < minNameLen {
		return nil, fmt.Errorf("%w: tag name must be at least %d characters", ErrValidation, minNameLen)
	}

	t := &Tag{ID: uuid.New().String(), Name: name}
	if err := s.repo.Create(ctx, t); err != nil {
		log.Error("failed to create tag", zap.Error(err))
		return nil, err
	}

	log.Info("tag created", zap.String("tag_id", t.ID))
	return t, nil
}

func (s *service) Update(ctx context.Context, id, name string) error {
	if id == "" {
		return fmt.Errorf("%w: tag id is required", ErrValidation)
	}
	if len(name) < minNameLen {
		return fmt.Errorf("%w: tag name must be at least %d characters", ErrValidation, minNameLen)
	}
	return s.repo.Update(ctx, id, name)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: tag id is required", ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
