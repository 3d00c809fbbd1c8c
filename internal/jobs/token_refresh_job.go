package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/maheshrc27/insta-signature/internal/service"
)

type TokenRefreshJob struct {
	ts      service.TokenService
	timeout time.Duration
}

func NewTokenRefreshJob(ts service.TokenService, timeout time.Duration) *TokenRefreshJob {
	return &TokenRefreshJob{ts: ts, timeout: timeout}
}

// RefreshTokens extends the long-lived Instagram token. Instagram only lets
// tokens older than 24h be refreshed, so a daily schedule is enough.
func (j *TokenRefreshJob) RefreshTokens() {
	if !j.ts.Configured() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.ts.RefreshInstagramToken(ctx); err != nil {
		slog.Info("Unable to refresh tokens for Instagram", "error", err)
	}
}
