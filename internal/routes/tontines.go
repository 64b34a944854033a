package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/likelemba/likelemba/internal/stats"
	"github.com/likelemba/likelemba/internal/tontine"
)

// RegisterTontineRoutes wires tontine registry endpoints. The "mine" route
// must precede the parameterised one.
func RegisterTontineRoutes(r fiber.Router, h *tontine.Handler, sh *stats.Handler) {
	r.Post("/tontines", h.Create)
	r.Get("/tontines", h.List)
	r.Get("/tontines/mine", h.Mine)
	r.Get("/tontines/:tontineId", h.Get)
	r.Put("/tontines/:tontineId", h.Update)
	r.Delete("/tontines/:tontineId", h.Delete)
	r.Get("/tontines/:tontineId/stats", sh.Get)
}
