package job

import (
	"github.com/robfig/cron"
)

const (
	CacheRefreshSchedule = "@hourly"
	TokenRefreshSchedule = "@daily"
)

// NewScheduler registers the cache refresh and, when given, the token refresh.
// The caller starts and stops the returned cron.
func NewScheduler(cacheJob *CacheRefreshJob, tokenJob *TokenRefreshJob) (*cron.Cron, error) {
	c := cron.New()
	if err := c.AddFunc(CacheRefreshSchedule, cacheJob.RefreshCache); err != nil {
		return nil, err
	}
	if tokenJob != nil {
		if err := c.AddFunc(TokenRefreshSchedule, tokenJob.RefreshTokens); err != nil {
			return nil, err
		}
	}
	return c, nil
}
