package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/insta-signature/internal/service"
)

type SignatureHandler struct {
	s service.SignatureService
}

func NewSignatureHandler(s service.SignatureService) *SignatureHandler {
	return &SignatureHandler{s: s}
}

func (h *SignatureHandler) GetSignatureConfig(c *fiber.Ctx) error {
	setSharedCache(c, signatureMaxAge)
	return c.Status(fiber.StatusOK).JSON(h.s.GetSignatureConfig())
}
