package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/insta-signature/internal/service"
)

type InstagramHandler struct {
	refresh func() service.RefreshService
	ig      service.InstagramService
}

// NewInstagramHandler takes a provider rather than a service so that stateless
// deployments can hand out a fresh cache per request.
func NewInstagramHandler(refresh func() service.RefreshService, ig service.InstagramService) *InstagramHandler {
	return &InstagramHandler{refresh: refresh, ig: ig}
}

func (h *InstagramHandler) GetPosts(c *fiber.Ctx) error {
	posts := h.refresh().Read(c.UserContext())

	setSharedCache(c, postsMaxAge)
	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *InstagramHandler) RefreshCache(c *fiber.Ctx) error {
	result := h.refresh().ForceRefresh(c.UserContext(), service.TriggerForce)
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *InstagramHandler) TestInstagram(c *fiber.Ctx) error {
	result := h.ig.TestAPI(c.UserContext())
	return c.Status(fiber.StatusOK).JSON(result)
}
