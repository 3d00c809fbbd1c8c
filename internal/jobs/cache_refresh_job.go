package job

import (
	"context"
	"log/slog"

	"github.com/maheshrc27/insta-signature/internal/service"
)

type CacheRefreshJob struct {
	rs service.RefreshService
}

func NewCacheRefreshJob(rs service.RefreshService) *CacheRefreshJob {
	return &CacheRefreshJob{rs: rs}
}

func (j *CacheRefreshJob) RefreshCache() {
	result := j.rs.ForceRefresh(context.Background(), service.TriggerCron)
	slog.Info("scheduled cache refresh done",
		"posts", result.PostsCount,
		"thumbnails", result.ThumbnailsCount,
		"last_update", result.LastUpdate,
	)
}
