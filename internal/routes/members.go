package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/likelemba/likelemba/internal/membership"
)

// RegisterMemberRoutes wires membership endpoints: self-service join plus the
// treasurer-managed manual add and removal.
func RegisterMemberRoutes(r fiber.Router, h *membership.Handler) {
	r.Post("/tontines/:tontineId/join", h.Join)
	r.Get("/tontines/:tontineId/members", h.ListByTontine)
	r.Post("/members", h.AddManual)
	r.Get("/members/:memberId", h.Get)
	r.Delete("/members/:memberId", h.Remove)
}
