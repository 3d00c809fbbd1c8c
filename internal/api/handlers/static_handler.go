package handlers

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

type StaticHandler struct {
	dir string
}

func NewStaticHandler(publicDir string) *StaticHandler {
	return &StaticHandler{dir: publicDir}
}

func (h *StaticHandler) file(name string) fiber.Handler {
	path := filepath.Join(h.dir, name)
	return func(c *fiber.Ctx) error {
		return c.SendFile(path)
	}
}

func (h *StaticHandler) Signature() fiber.Handler { return h.file("signature.html") }

func (h *StaticHandler) Home() fiber.Handler { return h.file("index.html") }

func (h *StaticHandler) Favicon() fiber.Handler {
	path := filepath.Join(h.dir, "favicon.svg")
	return func(c *fiber.Ctx) error {
		c.Type("svg")
		return c.SendFile(path)
	}
}
