// Package server wires configuration into the cache, services, scheduler and
// HTTP routes for both deployment modes.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/insta-signature/configs"
	"github.com/maheshrc27/insta-signature/internal/api"
	"github.com/maheshrc27/insta-signature/internal/cache"
	job "github.com/maheshrc27/insta-signature/internal/jobs"
	"github.com/maheshrc27/insta-signature/internal/repository"
	"github.com/maheshrc27/insta-signature/internal/service"
	"github.com/robfig/cron"
)

type Server struct {
	App *fiber.App
	// Refresh is the process-wide orchestrator; nil in stateless mode.
	Refresh service.RefreshService
	Tokens  service.TokenService

	cfg  config.Config
	cron *cron.Cron
}

func New(cfg config.Config) (*Server, error) {
	client := &http.Client{Timeout: cfg.UpstreamTimeout}

	tokens := service.NewTokenService(cfg, client)
	instagram := service.NewInstagramService(cfg, tokens, client)

	s := &Server{cfg: cfg, Tokens: tokens}
	deps := api.Dependencies{
		Instagram: instagram,
		Tokens:    tokens,
		Signature: service.NewSignatureService(),
	}

	if cfg.Stateless() {
		deps.Refresh = func() service.RefreshService {
			store := cache.NewStore(cfg.CacheDuration, service.NewPassThroughResolver())
			return service.NewRefreshService(cfg, instagram, store)
		}
	} else {
		sink, err := thumbnailSink(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.ThumbnailStore != config.StoreR2 {
			deps.ThumbnailDir = cfg.ThumbnailDir
		}

		resolver := service.NewResizeResolver(cfg, sink, client)
		store := cache.NewStore(cfg.CacheDuration, resolver)
		s.Refresh = service.NewRefreshService(cfg, instagram, store)
		deps.Refresh = func() service.RefreshService { return s.Refresh }

		var tokenJob *job.TokenRefreshJob
		if cfg.TokenAutoRefresh {
			tokenJob = job.NewTokenRefreshJob(tokens, cfg.UpstreamTimeout)
		}
		s.cron, err = job.NewScheduler(job.NewCacheRefreshJob(s.Refresh), tokenJob)
		if err != nil {
			return nil, fmt.Errorf("scheduling jobs: %w", err)
		}
	}

	s.App = api.SetupRoutes(cfg, deps)
	return s, nil
}

func thumbnailSink(cfg config.Config) (service.ThumbnailSink, error) {
	switch cfg.ThumbnailStore {
	case config.StoreR2:
		r2, err := service.NewR2Service(cfg)
		if err != nil {
			return nil, fmt.Errorf("r2 thumbnail store: %w", err)
		}
		return r2, nil
	case config.StoreFS, "":
		return repository.NewThumbnailRepository(cfg.ThumbnailDir, "/thumbnails"), nil
	default:
		return nil, fmt.Errorf("unknown thumbnail store %q", cfg.ThumbnailStore)
	}
}

// Start warms the cache in the background and starts the scheduler. It is a
// no-op in stateless mode.
func (s *Server) Start() {
	if s.cron == nil {
		return
	}

	go job.NewCacheRefreshJob(s.Refresh).RefreshCache()
	s.cron.Start()
	slog.Info("scheduler started", "cache_refresh", job.CacheRefreshSchedule, "token_refresh", s.cfg.TokenAutoRefresh)
}

func (s *Server) Shutdown() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return s.App.Shutdown()
}
