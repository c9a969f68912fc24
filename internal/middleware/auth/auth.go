package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/amazoniatrade/marketplace/internal/models"
	"github.com/amazoniatrade/marketplace/internal/token"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

type Middleware struct {
	Tokens *token.Service
}

// Require extracts a bearer credential from the Authorization header, verifies
// it and attaches {userID, role} to the request context. Auth failures are
// terminal for the request.
func (m *Middleware) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return fail(c, "no token provided")
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 {
			return fail(c, "malformed authorization header")
		}
		if !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, `authorization scheme must be "Bearer"`)
		}

		claims, err := m.Tokens.Verify(parts[1])
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				return fail(c, "token expired")
			}
			return fail(c, "invalid token")
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		return next(c)
	}
}

// RequireRole is Require plus a capability check on the attached role.
func (m *Middleware) RequireRole(role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return m.Require(func(c echo.Context) error {
			got, ok := UserRole(c)
			if !ok || got != role {
				return c.JSON(http.StatusForbidden, echo.Map{
					"ok":      false,
					"message": "access denied for role",
				})
			}
			return next(c)
		})
	}
}

func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(ContextUserID).(uint)
	return id, ok
}

func UserRole(c echo.Context) (models.Role, bool) {
	role, ok := c.Get(ContextRole).(models.Role)
	return role, ok
}

func fail(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "message": msg})
}
