package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartauth/auth-service/internal/api/metrics"
	"github.com/smartauth/auth-service/internal/core/domain"
	"github.com/smartauth/auth-service/internal/core/ports"
)

// AdminHandler exposes privileged user administration endpoints. The router
// mounts it behind BasicAuth + RBAC(ROLE_ADMIN).
type AdminHandler struct {
	userService ports.UserService
}

func NewAdminHandler(userService ports.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// AssignRole adds a role to an existing user.
//
// @Summary      Assign a role to a user
// @Tags         admin
// @Produce      plain
// @Param        userId    query     string  true  "Target user id"
// @Param        roleName  query     string  true  "Role name, e.g. ROLE_ADMIN"
// @Success      200       {string}  string  "Role assigned successfully"
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Security     BasicAuth
// @Router       /api/admin/users/roles [post]
func (h *AdminHandler) AssignRole(c echo.Context) error {
	userID := c.QueryParam("userId")
	roleName := c.QueryParam("roleName")
	if userID == "" || roleName == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId and roleName are required"})
	}

	if err := h.userService.AssignRole(c.Request().Context(), userID, roleName); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrRoleNotFound) {
			metrics.RoleAssignmentsTotal.WithLabelValues("not_found").Inc()
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		// Unexpected error: defer to the error handler's logged generic 500.
		metrics.RoleAssignmentsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RoleAssignmentsTotal.WithLabelValues("assigned").Inc()
	return c.String(http.StatusOK, "Role assigned successfully")
}
