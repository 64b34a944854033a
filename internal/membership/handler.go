package membership

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

// Handler exposes membership HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a membership HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

const dateLayout = "2006-01-02"

type membershipResponse struct {
	ID        string `json:"id"`
	TontineID string `json:"tontine_id"`
	UserID    string `json:"user_id"`
	JoinDate  string `json:"join_date"`
	Position  int    `json:"position"`
}

func newMembershipResponse(m Membership) membershipResponse {
	return membershipResponse{
		ID:        m.ID,
		TontineID: m.TontineID,
		UserID:    m.UserID,
		JoinDate:  m.JoinDate.Format(dateLayout),
		Position:  m.Position,
	}
}

// Join lets the authenticated caller join a tontine.
func (h *Handler) Join(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return fiber.NewError(http.StatusUnauthorized, access.ErrUnauthorized.Error())
	}
	m, err := h.service.Join(c.UserContext(), c.Params("tontineId"), user.ID)
	if err != nil {
		return admissionError(err)
	}
	return c.Status(http.StatusCreated).JSON(newMembershipResponse(m))
}

type addMemberRequest struct {
	TontineID string `json:"tontine_id"`
	UserID    string `json:"user_id"`
	Position  int    `json:"position"`
	JoinDate  string `json:"join_date"`
}

// AddManual lets a treasurer or admin place a user at a chosen position.
func (h *Handler) AddManual(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := access.RequireAnyOf(user, identity.RoleTreasurer, identity.RoleAdmin); err != nil {
		if errors.Is(err, access.ErrUnauthorized) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(http.StatusForbidden, err.Error())
	}
	var req addMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	joinDate, err := time.Parse(dateLayout, req.JoinDate)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid join_date, expected YYYY-MM-DD")
	}
	m, err := h.service.AddManual(c.UserContext(), req.TontineID, req.UserID, req.Position, joinDate)
	if err != nil {
		return admissionError(err)
	}
	return c.Status(http.StatusCreated).JSON(newMembershipResponse(m))
}

// Get returns one membership by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	m, err := h.service.Get(c.UserContext(), c.Params("memberId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "membership not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(newMembershipResponse(m))
}

// Remove deletes a membership.
func (h *Handler) Remove(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := access.RequireAnyOf(user, identity.RoleTreasurer, identity.RoleAdmin); err != nil {
		if errors.Is(err, access.ErrUnauthorized) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(http.StatusForbidden, err.Error())
	}
	if err := h.service.Remove(c.UserContext(), c.Params("memberId")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "membership not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "member removed"})
}

// ListByTontine returns the roster of a tontine.
func (h *Handler) ListByTontine(c *fiber.Ctx) error {
	memberships, err := h.service.ListByTontine(c.UserContext(), c.Params("tontineId"))
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]membershipResponse, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, newMembershipResponse(m))
	}
	return c.Status(http.StatusOK).JSON(out)
}

func admissionError(err error) error {
	switch {
	case errors.Is(err, tontine.ErrNotFound), errors.Is(err, identity.ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAlreadyMember):
		return fiber.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrCapacityExceeded):
		return fiber.NewError(http.StatusConflict, err.Error())
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}
