package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lunchly/internal/model"
	"github.com/iliyamo/lunchly/internal/repository"
)

// dbTimeout bounds the database work of a single request.
const dbTimeout = 5 * time.Second

func dbContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// respondError maps repository and model errors onto HTTP responses.
// Anything unrecognized is a data access failure: it is logged and the
// client gets a bare 500.
func respondError(c echo.Context, err error) error {
	var nf *repository.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(nf.Status(), echo.Map{"error": nf.Error()})
	}
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":  ve.Message,
			"field":  ve.Field,
			"reason": ve.Reason,
		})
	}
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
