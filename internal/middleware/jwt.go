package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/likelemba/likelemba/internal/auth"
	"github.com/likelemba/likelemba/internal/identity"
)

const currentUserKey = "current_user"

// JWTAuth returns a middleware that validates bearer tokens and loads the
// subject user. Requests failing here never reach a role check.
func JWTAuth(tokens *auth.Service, repo identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		user, err := repo.FindByPhone(c.UserContext(), claims.Subject)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}

		c.Locals(currentUserKey, &user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user loaded by JWTAuth, or nil.
func CurrentUser(c *fiber.Ctx) *identity.User {
	user, _ := c.Locals(currentUserKey).(*identity.User)
	return user
}
