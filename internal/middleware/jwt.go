package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/lunchly/internal/utils" // access token verification
)

// Context keys set by JWTAuth.
const (
	StaffIDKey = "staff_id" // uint64
	RoleKey    = "role"     // string
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the staff id and role claims into the request context.  The
// provided secret must match the one used when issuing tokens.  Handlers
// read the values back with StaffID and c.Get(RoleKey).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// ParseAccessToken pins HS256 and requires exp and a numeric sub.
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			id, _ := claims.StaffID()

			c.Set(StaffIDKey, id)
			c.Set(RoleKey, claims.Role)
			return next(c)
		}
	}
}
