package stats

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/likelemba/likelemba/internal/tontine"
)

// Handler exposes the tontine statistics endpoint.
type Handler struct {
	service *Service
}

// NewHandler builds a statistics HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get returns the derived summary for one tontine.
func (h *Handler) Get(c *fiber.Ctx) error {
	summary, err := h.service.Compute(c.UserContext(), c.Params("tontineId"))
	if err != nil {
		if errors.Is(err, tontine.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "tontine not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(summary)
}
