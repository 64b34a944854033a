package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/likelemba/likelemba/internal/contribution"
)

// RegisterPaymentRoutes wires contribution endpoints. The server always
// assigns the authenticated caller as payer.
func RegisterPaymentRoutes(r fiber.Router, h *contribution.Handler) {
	r.Post("/payments", h.Record)
	r.Get("/tontines/:tontineId/payments", h.ListByTontine)
}
