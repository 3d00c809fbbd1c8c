package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	postsMaxAge     = 3600
	signatureMaxAge = 86400
)

// setSharedCache lets downstream proxies and CDNs keep the response.
func setSharedCache(c *fiber.Ctx, seconds int) {
	c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, s-maxage=%d", seconds))
}
