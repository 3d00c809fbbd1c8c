// Package handler is the serverless entry point. Every invocation gets an
// empty cache and thumbnails are referenced by their origin URL.
package handler

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	config "github.com/maheshrc27/insta-signature/configs"
	"github.com/maheshrc27/insta-signature/internal/server"
)

var (
	once    sync.Once
	handler http.HandlerFunc
)

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.LoadConfig()
		cfg.DeployMode = config.ModeStateless

		srv, err := server.New(*cfg)
		if err != nil {
			slog.Error("failed to set up handler", "error", err)
			handler = func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
			}
			return
		}
		handler = adaptor.FiberApp(srv.App)
	})

	handler(w, r)
}
