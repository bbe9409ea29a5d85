package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CheckHandler serves the plain-text probe endpoints used to exercise the
// authorization gate.
type CheckHandler struct{}

func NewCheckHandler() *CheckHandler {
	return &CheckHandler{}
}

// Public responds without any credential check.
//
// @Summary      Public probe
// @Tags         test
// @Produce      plain
// @Success      200  {string}  string
// @Router       /api/test/public [get]
func (h *CheckHandler) Public(c echo.Context) error {
	return c.String(http.StatusOK, "Public API - No Auth Required")
}

// Secure responds only for authenticated, enabled principals.
//
// @Summary      Authenticated probe
// @Tags         test
// @Produce      plain
// @Success      200  {string}  string
// @Failure      401  {object}  map[string]string
// @Security     BasicAuth
// @Router       /api/test/secure [get]
func (h *CheckHandler) Secure(c echo.Context) error {
	return c.String(http.StatusOK, "You are authenticated!")
}
