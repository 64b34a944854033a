package payout

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/likelemba/likelemba/internal/access"
	"github.com/likelemba/likelemba/internal/identity"
	"github.com/likelemba/likelemba/internal/middleware"
	"github.com/likelemba/likelemba/internal/tontine"
)

// Handler exposes turn HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a turn HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type recordRequest struct {
	TontineID string `json:"tontine_id"`
	UserID    string `json:"user_id"`
	Period    int    `json:"period"`
	Amount    int64  `json:"amount_received"`
}

type turnResponse struct {
	ID             string    `json:"id"`
	TontineID      string    `json:"tontine_id"`
	UserID         string    `json:"user_id"`
	Period         int       `json:"period"`
	AmountReceived int64     `json:"amount_received"`
	ReceivedAt     time.Time `json:"received_at"`
}

func newTurnResponse(t Turn) turnResponse {
	return turnResponse{
		ID:             t.ID,
		TontineID:      t.TontineID,
		UserID:         t.UserID,
		Period:         t.Period,
		AmountReceived: t.AmountReceived,
		ReceivedAt:     t.ReceivedAt,
	}
}

// Record appends a turn for the given beneficiary.
func (h *Handler) Record(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := access.RequireAnyOf(user, identity.RoleTreasurer, identity.RoleAdmin); err != nil {
		if errors.Is(err, access.ErrUnauthorized) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(http.StatusForbidden, err.Error())
	}
	var req recordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	t, err := h.service.Record(c.UserContext(), req.TontineID, req.UserID, req.Period, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, tontine.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotMember):
			return fiber.NewError(http.StatusForbidden, err.Error())
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}
	return c.Status(http.StatusCreated).JSON(newTurnResponse(t))
}

// ListByTontine returns all turns recorded for a tontine.
func (h *Handler) ListByTontine(c *fiber.Ctx) error {
	turns, err := h.service.ListByTontine(c.UserContext(), c.Params("tontineId"))
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]turnResponse, 0, len(turns))
	for _, t := range turns {
		out = append(out, newTurnResponse(t))
	}
	return c.Status(http.StatusOK).JSON(out)
}
