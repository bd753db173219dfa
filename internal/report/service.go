package report

import (
	"context"

	"erp-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Metadata(ctx context.Context) (*Metadata, error)
	Overview(ctx context.Context) (Overview, error)
	LatestOrders(ctx context.Context) (*LatestOrders, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Metadata(ctx context.Context) (*Metadata, error) {
	m, err := s.repo.Metadata(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to build metadata", zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (s *service) Overview(ctx context.Context) (Overview, error) {
	o, err := s.repo.Overview(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to build overview", zap.Error(err))
		return nil, err
	}
	if o == nil {
		o = Overview{}
	}
	return o, nil
}

func (s *service) LatestOrders(ctx context.Context) (*LatestOrders, error) {
	l, err := s.repo.LatestOrders(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch latest orders", zap.Error(err))
		return nil, err
	}
	if l.Orders == nil {
		l.Orders = []*RecentOrder{}
	}
	return l, nil
}
