package middleware

import (
	"net/http"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/labstack/echo/v4"
)

// Tracing opens an X-Ray segment named name for every request.  SQL issued
// with the request context becomes a subsegment when the database was
// opened through xray.SQLContext.
func Tracing(name string) echo.MiddlewareFunc {
	namer := xray.NewFixedSegmentNamer(name)
	return echo.WrapMiddleware(func(h http.Handler) http.Handler {
		return xray.Handler(namer, h)
	})
}
