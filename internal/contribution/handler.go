package contribution

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/likelemba/likelemba/internal/access"
	"github.com/likelemba/likelemba/internal/middleware"
	"github.com/likelemba/likelemba/internal/tontine"
)

// Handler exposes payment HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a payment HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type recordRequest struct {
	TontineID string `json:"tontine_id"`
	Amount    int64  `json:"amount"`
	Period    int    `json:"period"`
}

type paymentResponse struct {
	ID        string    `json:"id"`
	TontineID string    `json:"tontine_id"`
	UserID    string    `json:"user_id"`
	Amount    int64     `json:"amount"`
	Period    int       `json:"period"`
	PaidAt    time.Time `json:"paid_at"`
}

func newPaymentResponse(p Payment) paymentResponse {
	return paymentResponse{
		ID:        p.ID,
		TontineID: p.TontineID,
		UserID:    p.UserID,
		Amount:    p.Amount,
		Period:    p.Period,
		PaidAt:    p.PaidAt,
	}
}

// Record appends a payment with the authenticated caller as payer.
func (h *Handler) Record(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return fiber.NewError(http.StatusUnauthorized, access.ErrUnauthorized.Error())
	}
	var req recordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	p, err := h.service.Record(c.UserContext(), req.TontineID, user.ID, req.Amount, req.Period)
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
	return c.Status(http.StatusCreated).JSON(newPaymentResponse(p))
}

// ListByTontine returns all payments recorded for a tontine.
func (h *Handler) ListByTontine(c *fiber.Ctx) error {
	payments, err := h.service.ListByTontine(c.UserContext(), c.Params("tontineId"))
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, newPaymentResponse(p))
	}
	return c.Status(http.StatusOK).JSON(out)
}
