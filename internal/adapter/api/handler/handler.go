package handler

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/usecase"
)

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

// session returns the caller's stores. Unauthenticated callers get a
// throwaway anonymous session.
func session(c echo.Context, sessions *usecase.SessionManager) *usecase.Session {
	return sessions.Get(c.Request().Context(), middleware.CurrentUser(c))
}
