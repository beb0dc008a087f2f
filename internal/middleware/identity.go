package middleware

// identity.go holds helpers shared by the rate limiter and the handlers for
// reading the authenticated staff member out of the Echo context.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// StaffID returns the id stored by JWTAuth.  ok is false on routes that
// are not behind JWTAuth.
func StaffID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(StaffIDKey).(uint64)
	return id, ok && id != 0
}

// Role returns the role claim stored by JWTAuth, or "".
func Role(c echo.Context) string {
	role, _ := c.Get(RoleKey).(string)
	return role
}

// staffKey identifies the caller for rate limiting.  It returns "anon"
// when no staff member is authenticated.
func staffKey(c echo.Context) string {
	if id, ok := StaffID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
