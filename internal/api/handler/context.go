package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospital-ms/portal/internal/api/middleware"
	"github.com/hospital-ms/portal/internal/core/domain"
)

// ctxSession returns the session the Guard middleware stored. Its absence
// means the handler was mounted without a guard; fail fast with 401 rather
// than render a page for nobody.
func ctxSession(c echo.Context) (domain.Session, error) {
	sess, ok := middleware.SessionFrom(c)
	if !ok || !sess.Role.Valid() {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}
