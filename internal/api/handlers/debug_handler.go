package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/insta-signature/configs"
	"github.com/maheshrc27/insta-signature/internal/service"
	"github.com/maheshrc27/insta-signature/internal/transfer"
)

type DebugHandler struct {
	cfg     config.Config
	tokens  service.TokenService
	refresh func() service.RefreshService
}

func NewDebugHandler(cfg config.Config, tokens service.TokenService, refresh func() service.RefreshService) *DebugHandler {
	return &DebugHandler{cfg: cfg, tokens: tokens, refresh: refresh}
}

// GetDebugInfo reports configuration presence only, never secret values.
func (h *DebugHandler) GetDebugInfo(c *fiber.Ctx) error {
	info := transfer.DebugInfo{
		Environment:       h.cfg.Environment,
		HasInstagramToken: h.tokens.Configured(),
		TokenLength:       h.tokens.Length(),
		CacheStatus:       h.refresh().Status(),
		EnvVars: transfer.DebugEnvVars{
			SignatureName:    config.HasEnv("SIGNATURE_NAME"),
			SignatureTitle:   config.HasEnv("SIGNATURE_TITLE"),
			SignatureCompany: config.HasEnv("SIGNATURE_COMPANY"),
			MaxPosts:         strconv.Itoa(h.cfg.MaxPosts),
			ThumbnailSize:    strconv.Itoa(h.cfg.ThumbnailEdge),
		},
		Serverless: h.cfg.Stateless(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	return c.Status(fiber.StatusOK).JSON(info)
}
