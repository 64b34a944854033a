package routes

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/likelemba/likelemba/internal/access"
	"github.com/likelemba/likelemba/internal/identity"
	"github.com/likelemba/likelemba/internal/middleware"
)

// RegisterUserRoutes wires user endpoints. Registration is public; listing
// and deletion are admin-only.
func RegisterUserRoutes(public, protected fiber.Router, h *identity.Handler) {
	public.Post("/users", h.Create)
	protected.Get("/users", adminOnly, h.List)
	protected.Get("/users/:userId", h.Get)
	protected.Delete("/users/:userId", adminOnly, h.Delete)
}

func adminOnly(c *fiber.Ctx) error {
	if err := access.RequireRole(middleware.CurrentUser(c), identity.RoleAdmin); err != nil {
		if errors.Is(err, access.ErrUnauthorized) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(http.StatusForbidden, err.Error())
	}
	return c.Next()
}
