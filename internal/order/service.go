package order

import (
	"context"
	"fmt"

	"erp-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, actorUserID, description string) (*Order, error)
	Get(ctx context.Context, orderID string) (*Order, error)
	Search(ctx context.Context, f Filter) ([]*Order, error)

	AddLine(ctx context.Context, orderID, itemID string, quantity int) (*Order, error)
	UpdateLine(ctx context.Context, orderID, itemID string, quantity int) (*Order, error)
	RemoveLine(ctx context.Context, orderID, itemID string) (*Order, error)
	ChangeStatus(ctx context.Context, orderID, action string) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// validateLineInput rejects malformed input before any database access.
func validateLineInput(orderID, itemID string, quantity int) error {
	if orderID == "" {
		return fmt.Errorf("%w: order id is required", ErrValidation)
	}
	if itemID == "" {
		return fmt.Errorf("%w: item id is required", ErrValidation)
	}
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	return nil
}

func (s *service) Create(ctx context.Context, actorUserID, description string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("user_id", actorUserID),
	)

	if actorUserID == "" {
		return nil, fmt.Errorf("%w: actor user id is required", ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	o := &Order{
		ID:          uuid.New().String(),
		Description: description,
		UserID:      actorUserID,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	log.Info("order created", zap.String("order_id", o.ID))
	return o, nil
}

func (s *service) Get(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrValidation)
	}
	return s.repo.Get(ctx, orderID)
}

func (s *service) Search(ctx context.Context, f Filter) ([]*Order, error) {
	orders, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (s *service) AddLine(ctx context.Context, orderID, itemID string, quantity int) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddLine"),
		zap.String("order_id", orderID),
		zap.String("item_id", itemID),
		zap.Int("quantity", quantity),
	)

	if err := validateLineInput(orderID, itemID, quantity); err != nil {
		log.Warn("invalid add line input", zap.Error(err))
		return nil, err
	}

	o, err := s.repo.AddLine(ctx, orderID, itemID, quantity)
	if err != nil {
		log.Warn("add line rejected", zap.Error(err))
		return nil, err
	}

	log.Info("line added", zap.String("total", o.Total.String()))
	return o, nil
}

func (s *service) UpdateLine(ctx context.Context, orderID, itemID string, quantity int) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateLine"),
		zap.String("order_id", orderID),
		zap.String("item_id", itemID),
		zap.Int("quantity", quantity),
	)

	if err := validateLineInput(orderID, itemID, quantity); err != nil {
		log.Warn("invalid update line input", zap.Error(err))
		return nil, err
	}

	o, err := s.repo.UpdateLine(ctx, orderID, itemID, quantity)
	if err != nil {
		log.Warn("update line rejected", zap.Error(err))
		return nil, err
	}

	log.Info("line updated", zap.String("total", o.Total.String()))
	return o, nil
}

func (s *service) RemoveLine(ctx context.Context, orderID, itemID string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RemoveLine"),
		zap.String("order_id", orderID),
		zap.String("item_id", itemID),
	)

	if orderID == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrValidation)
	}
	if itemID == "" {
		return nil, fmt.Errorf("%w: item id is required", ErrValidation)
	}

	o, err := s.repo.RemoveLine(ctx, orderID, itemID)
	if err != nil {
		log.Warn("remove line rejected", zap.Error(err))
		return nil, err
	}

	log.Info("line removed", zap.String("total", o.Total.String()))
	return o, nil
}

func (s *service) ChangeStatus(ctx context.Context, orderID, action string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ChangeStatus"),
		zap.String("order_id", orderID),
		zap.String("action", action),
	)

	if orderID == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrValidation)
	}

	a, err := ParseAction(action)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.UpdateStatus(ctx, orderID, a)
	if err != nil {
		log.Warn("status change rejected", zap.Error(err))
		return nil, err
	}

	log.Info("status changed", zap.String("status", string(o.Status)))
	return o, nil
}
