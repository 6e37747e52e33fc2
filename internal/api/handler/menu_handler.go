package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/ports"
)

// MenuSource projects navigation entries for a role.
type MenuSource interface {
	Project(role domain.Role) []domain.MenuEntry
}

type MenuHandler struct {
	menu     MenuSource
	sessions ports.SessionSource
}

func NewMenuHandler(menu MenuSource, sessions ports.SessionSource) *MenuHandler {
	return &MenuHandler{menu: menu, sessions: sessions}
}

// Menu returns the sidebar entries of the current session.
//
// @Summary      Navigation menu
// @Tags         navigation
// @Produce      json
// @Success      200  {object}  menuResponse
// @Router       /menu [get]
func (h *MenuHandler) Menu(c echo.Context) error {
	return c.JSON(http.StatusOK, h.current(c.Request().Context()))
}

func (h *MenuHandler) current(ctx context.Context) menuResponse {
	sess, ok := h.sessions.Current(ctx)
	if !ok {
		return menuResponse{Items: h.menu.Project(domain.RoleNone)}
	}
	return menuResponse{Role: sess.Role.String(), Items: h.menu.Project(sess.Role)}
}
