package handler

import (
	"net/http"
	"orbit/cmd/internal/utils/apierror"
	"orbit/cmd/internal/utils/uid"

	"github.com/labstack/echo/v4"
)

// pathID reads the snowflake id from the ":id" path segment.
func pathID(c echo.Context) (int64, apierror.ErrorResponse) {
	id, err := uid.Parse(c.Param("id"))
	if err != nil {
		return 0, apierror.InvalidIDError
	}
	return id, nil
}

// HealthCheck is polled by the container health check.
func HealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
