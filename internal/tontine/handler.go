package tontine

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/likelemba/likelemba/internal/access"
	"github.com/likelemba/likelemba/internal/identity"
	"github.com/likelemba/likelemba/internal/middleware"
)

// Handler exposes tontine HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a tontine HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

const dateLayout = "2006-01-02"

type specRequest struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	ContributionAmount int64  `json:"contribution_amount"`
	Frequency          string `json:"frequency"`
	RotationMode       string `json:"rotation_mode"`
	MaxMembers         int    `json:"max_members"`
	StartDate          string `json:"start_date"`
}

func (req specRequest) toSpec() (Spec, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return Spec{}, err
	}
	return Spec{
		Name:               req.Name,
		Description:        req.Description,
		ContributionAmount: req.ContributionAmount,
		Frequency:          req.Frequency,
		RotationMode:       req.RotationMode,
		MaxMembers:         req.MaxMembers,
		StartDate:          startDate,
	}, nil
}

type tontineResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	ContributionAmount int64     `json:"contribution_amount"`
	Frequency          string    `json:"frequency"`
	RotationMode       string    `json:"rotation_mode"`
	TreasurerID        string    `json:"treasurer_id"`
	MaxMembers         int       `json:"max_members"`
	StartDate          string    `json:"start_date"`
	CreatedAt          time.Time `json:"created_at"`
}

func newTontineResponse(t Tontine) tontineResponse {
	return tontineResponse{
		ID:                 t.ID,
		Name:               t.Name,
		Description:        t.Description,
		ContributionAmount: t.ContributionAmount,
		Frequency:          t.Frequency,
		RotationMode:       t.RotationMode,
		TreasurerID:        t.TreasurerID,
		MaxMembers:         t.MaxMembers,
		StartDate:          t.StartDate.Format(dateLayout),
		CreatedAt:          t.CreatedAt,
	}
}

func tontineListResponse(tontines []Tontine) []tontineResponse {
	out := make([]tontineResponse, 0, len(tontines))
	for _, t := range tontines {
		out = append(out, newTontineResponse(t))
	}
	return out
}

// Create stores a new tontine with the caller as treasurer.
func (h *Handler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := access.RequireAnyOf(user, identity.RoleTreasurer, identity.RoleAdmin); err != nil {
		return forbidden(err)
	}
	var req specRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	spec, err := req.toSpec()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
	}
	t, err := h.service.Create(c.UserContext(), spec, user.ID)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(newTontineResponse(t))
}

// List returns all tontines.
func (h *Handler) List(c *fiber.Ctx) error {
	tontines, err := h.service.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(tontineListResponse(tontines))
}

// Mine returns the role-dependent view of the caller's tontines.
func (h *Handler) Mine(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return fiber.NewError(http.StatusUnauthorized, access.ErrUnauthorized.Error())
	}
	tontines, err := h.service.ListMine(c.UserContext(), user)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(tontineListResponse(tontines))
}

// Get returns one tontine by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	t, err := h.service.Get(c.UserContext(), c.Params("tontineId"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "tontine not found")
	}
	return c.Status(http.StatusOK).JSON(newTontineResponse(t))
}

// Update replaces all editable fields of a tontine.
func (h *Handler) Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := access.RequireAnyOf(user, identity.RoleTreasurer, identity.RoleAdmin); err != nil {
		return forbidden(err)
	}
	var req specRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	spec, err := req.toSpec()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
	}
	t, err := h.service.Update(c.UserContext(), c.Params("tontineId"), spec)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "tontine not found")
		case errors.Is(err, ErrCapacityExceeded):
			return fiber.NewError(http.StatusConflict, err.Error())
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(newTontineResponse(t))
}

// Delete removes a tontine.
func (h *Handler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := access.RequireRole(user, identity.RoleAdmin); err != nil {
		return forbidden(err)
	}
	if err := h.service.Delete(c.UserContext(), c.Params("tontineId")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "tontine not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "tontine deleted"})
}

func forbidden(err error) error {
	if errors.Is(err, access.ErrUnauthorized) {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	return fiber.NewError(http.StatusForbidden, err.Error())
}
