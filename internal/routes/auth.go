package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/likelemba/likelemba/internal/auth"
)

// RegisterAuthRoutes wires the login endpoint.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	if rateLimiter != nil {
		r.Post("/auth/login", rateLimiter, h.Login)
		return
	}
	r.Post("/auth/login", h.Login)
}
