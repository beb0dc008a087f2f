package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lunchly/internal/handler"
	"github.com/iliyamo/lunchly/internal/middleware"
	"github.com/iliyamo/lunchly/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check for load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints.  Register, login, refresh
// and logout live under /v1/auth without a session; /v1/me needs a valid
// access token.  limit is applied to every one of them.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limit)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh) // rotates the refresh token
	g.POST("/logout", a.Logout)   // refresh_token in the body, or a bearer token to end every session

	e.GET("/v1/me", a.Me,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleHost, model.RoleManager),
		limit,
	)
}

// RegisterCustomers registers the customer and reservation endpoints under
// /v1.  Every route needs a staff access token; the top customers report
// is for managers only.  cache runs after the role check so a cached
// report is never served to a host.
func RegisterCustomers(e *echo.Echo, ch *handler.CustomerHandler, rh *handler.ReservationHandler, jwtSecret string, limit, cache echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleHost, model.RoleManager),
		limit,
	)

	// ---- Customers ----
	g.GET("/customers", ch.List, cache) // ?search= filters by first or last name
	g.POST("/customers", ch.Create, cache)
	g.GET("/customers/top", ch.Top, middleware.RequireRole(model.RoleManager), cache)
	g.GET("/customers/:id", ch.Detail, cache) // customer plus reservations
	g.PUT("/customers/:id", ch.Update, cache)

	// ---- Reservations ----
	g.POST("/customers/:id/reservations", rh.Add, cache)
	g.GET("/customers/:id/reservations/:reservationId", rh.Get, cache)
	g.PUT("/customers/:id/reservations/:reservationId", rh.Edit, cache)
}
