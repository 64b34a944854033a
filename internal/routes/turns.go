package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/likelemba/likelemba/internal/payout"
)

// RegisterTurnRoutes wires payout endpoints.
func RegisterTurnRoutes(r fiber.Router, h *payout.Handler) {
	r.Post("/turns", h.Record)
	r.Get("/tontines/:tontineId/turns", h.ListByTontine)
}
