package item

import (
	"context"
	"fmt"

	"erp-be/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const minTextLen = 4

type Service interface {
	List(ctx context.Context) ([]*Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, p CreateParams) (*Item, error)
	Update(ctx context.Context, p UpdateParams) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateFields(name, description string, stock int, price decimal.Decimal) error {
	if len(name) < minTextLen {
		return fmt.Errorf("%w: name must be at least %d characters", ErrValidation, minTextLen)
	}
	if len(description) < minTextLen {
		return fmt.Errorf("%w: description must be at least %d characters", ErrValidation, minTextLen)
	}
	if stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]*Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Item{}
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, id string) (*Item, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: item id is required", ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, p CreateParams) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", p.Name),
	)

	if err := validateFields(p.Name, p.Description, p.Stock, p.Price); err != nil {
		return nil, err
	}
	if p.UserID == "" {
		return nil, fmt.Errorf("%w: owner user id is required", ErrValidation)
	}

	it := &Item{
		ID:          uuid.New().String(),
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		Price:       p.Price,
		UserID:      p.UserID,
	}

	if err := s.repo.Create(ctx, it, p.TagIDs); err != nil {
		log.Error("failed to create item", zap.Error(err))
		return nil, err
	}

	log.Info("item created", zap.String("item_id", it.ID))
	return it, nil
}

func (s *service) Update(ctx context.Context, p UpdateParams) error {
	if p.ID == "" {
		return fmt.Errorf("%w: item id is required", ErrValidation)
	}
	if err := validateFields(p.Name, p.Description, p.Stock, p.Price); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: item id is required", ErrValidation)
	}
	return s.repo.SoftDelete(ctx, id)
}
