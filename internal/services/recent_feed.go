package services

import (
	"condo-package-service/internal/domain"
	"condo-package-service/internal/ports"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Fixed page size of the recent-deliveries feed.
const RecentFeedLimit = 10

// FeedService serves the last delivered packages, newest first,
// through a read-model cache. The cache is re-warmed on an interval by
// the refresh worker and dropped immediately after every confirmed
// delivery.
type FeedService struct {
	Repo   ports.PackageRepository
	Cache  ports.FeedCache
	Logger *zap.Logger
}

// Recent returns up to RecentFeedLimit delivered packages ordered by
// delivered_at descending.
func (s *FeedService) Recent(ctx context.Context) ([]*domain.Package, error) {
	if s.Cache != nil {
		pkgs, hit, err := s.Cache.GetRecent(ctx)
		if err != nil {
			s.Logger.Warn("feed cache read failed", zap.Error(err))
		} else if hit {
			return pkgs, nil
		}
	}

	return s.Refresh(ctx)
}

// Refresh reads the feed from the repository and re-warms the cache.
func (s *FeedService) Refresh(ctx context.Context) ([]*domain.Package, error) {
	pkgs, err := s.Repo.ListRecentDeliveries(ctx, RecentFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("recent deliveries: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.PutRecent(ctx, pkgs); err != nil {
			s.Logger.Warn("feed cache write failed", zap.Error(err))
		}
	}

	return pkgs, nil
}
