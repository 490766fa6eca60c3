package services

import (
	"condo-package-service/internal/domain"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func deliveredPackages(n int) []*domain.Package {
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	out := make([]*domain.Package, 0, n)
	for i := 0; i < n; i++ {
		deliveredAt := base.Add(time.Duration(i) * time.Hour)
		out = append(out, &domain.Package{
			ID:          fmt.Sprintf("p%d", i+1),
			Code:        fmt.Sprintf("QR-%04d", i+1),
			Status:      domain.StatusDelivered,
			ReceivedAt:  base.Add(-time.Hour),
			DeliveredAt: &deliveredAt,
		})
	}
	return out
}

func TestFeedRecentReturnsTenMostRecent(t *testing.T) {
	repo := newMemPackageRepo(deliveredPackages(12)...)
	svc := &FeedService{Repo: repo, Cache: &fakeFeedCache{}, Logger: zap.NewNop()}

	pkgs, err := svc.Recent(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, RecentFeedLimit)

	// Newest first: p12 was delivered last.
	require.Equal(t, "p12", pkgs[0].ID)
	require.Equal(t, "p3", pkgs[9].ID)
	for i := 1; i < len(pkgs); i++ {
		require.False(t, pkgs[i-1].DeliveredAt.Before(*pkgs[i].DeliveredAt))
	}
}

func TestFeedRecentServesFromCache(t *testing.T) {
	repo := newMemPackageRepo(deliveredPackages(3)...)
	cache := &fakeFeedCache{}
	svc := &FeedService{Repo: repo, Cache: cache, Logger: zap.NewNop()}

	first, err := svc.Recent(context.Background())
	require.NoError(t, err)
	require.True(t, cache.warm)

	repo.failWith = errTransport
	second, err := svc.Recent(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFeedRefreshRewarmsCache(t *testing.T) {
	repo := newMemPackageRepo(deliveredPackages(2)...)
	cache := &fakeFeedCache{}
	svc := &FeedService{Repo: repo, Cache: cache, Logger: zap.NewNop()}

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, cache.warm)
	require.Equal(t, RecentFeedLimit, repo.lastListLimit)
}

func TestFeedRefreshSurfacesTransportError(t *testing.T) {
	repo := newMemPackageRepo()
	repo.failWith = errTransport
	svc := &FeedService{Repo: repo, Cache: &fakeFeedCache{}, Logger: zap.NewNop()}

	_, err := svc.Refresh(context.Background())
	require.Error(t, err)
}
