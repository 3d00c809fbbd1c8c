package service

import (
	"context"
	"log/slog"

	config "github.com/maheshrc27/insta-signature/configs"
	"github.com/maheshrc27/insta-signature/internal/cache"
	"github.com/maheshrc27/insta-signature/internal/metrics"
	"github.com/maheshrc27/insta-signature/internal/models"
	"github.com/maheshrc27/insta-signature/internal/transfer"
	"golang.org/x/sync/singleflight"
)

const (
	TriggerRead  = "read"
	TriggerForce = "force"
	TriggerCron  = "cron"
)

// RefreshService decides when the cache is refetched. A stale read refreshes
// before serving; ForceRefresh always refreshes.
//
// Without single flight two reads that both see a stale cache each fetch and
// write, and the write that finishes last wins.
type RefreshService interface {
	Read(ctx context.Context) []models.Post
	ForceRefresh(ctx context.Context, trigger string) transfer.RefreshResult
	Status() transfer.CacheStatus
}

type refreshService struct {
	ig        InstagramService
	store     *cache.Store
	limit     int
	stateless bool
	group     *singleflight.Group
}

func NewRefreshService(cfg config.Config, ig InstagramService, store *cache.Store) RefreshService {
	rs := &refreshService{
		ig:        ig,
		store:     store,
		limit:     cfg.MaxPosts,
		stateless: cfg.Stateless(),
	}
	if cfg.RefreshSingleFlight {
		rs.group = &singleflight.Group{}
	}
	return rs
}

func (s *refreshService) Read(ctx context.Context) []models.Post {
	if s.store.IsStale() {
		slog.Info("cache is stale, fetching instagram posts")
		s.refresh(ctx, TriggerRead)
	} else {
		metrics.RecordCacheHit()
	}
	return s.store.ReadWithThumbnails()
}

func (s *refreshService) ForceRefresh(ctx context.Context, trigger string) transfer.RefreshResult {
	if s.stateless {
		return transfer.RefreshResult{
			Success:    true,
			Message:    "Refresh is implicit: every invocation starts with an empty cache",
			Serverless: true,
		}
	}

	status := s.refresh(ctx, trigger)
	return transfer.RefreshResult{
		Success:         true,
		Message:         "Cache refreshed successfully",
		PostsCount:      status.PostsCount,
		ThumbnailsCount: status.ThumbnailsCount,
		LastUpdate:      status.LastUpdate,
		Serverless:      false,
	}
}

func (s *refreshService) Status() transfer.CacheStatus {
	return s.store.Status()
}

// refresh runs detached from the caller's cancellation so that a client
// hanging up mid-refresh still leaves a warm cache behind.
func (s *refreshService) refresh(ctx context.Context, trigger string) transfer.CacheStatus {
	ctx = context.WithoutCancel(ctx)

	run := func() transfer.CacheStatus {
		metrics.RecordRefresh(trigger)
		posts := s.ig.FetchPosts(ctx, s.limit)
		return s.store.Write(ctx, posts)
	}

	if s.group == nil {
		return run()
	}

	v, _, _ := s.group.Do("refresh", func() (any, error) {
		return run(), nil
	})
	return v.(transfer.CacheStatus)
}
