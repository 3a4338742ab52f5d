package roleconfig

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	session *Session
}

func NewHandler(session *Session) *Handler {
	return &Handler{session: session}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/roles", h.ListRoles)
	api.GET("/roles/:id", h.GetRole)
	api.GET("/roles/:id/theme", h.GetRoleTheme)
	api.GET("/session", h.GetSession)
	api.PUT("/session/role", h.SwitchRole)
}

// ListRoles returns every registered role configuration in registry order.
func (h *Handler) ListRoles(c echo.Context) error {
	roles := Roles()
	configs := make([]Configuration, 0, len(roles))
	for _, r := range roles {
		configs = append(configs, Lookup(r))
	}
	return c.JSON(http.StatusOK, configs)
}

// GetRole returns the configuration for a role. Unknown roles resolve to
// the default role rather than a 404 so the navigation shell always has
// something to render.
func (h *Handler) GetRole(c echo.Context) error {
	return c.JSON(http.StatusOK, Lookup(Role(c.Param("id"))))
}

// GetRoleTheme returns just the theme tokens for a role.
func (h *Handler) GetRoleTheme(c echo.Context) error {
	return c.JSON(http.StatusOK, ThemeFor(Role(c.Param("id"))))
}

type sessionResponse struct {
	CurrentRole Role          `json:"current_role"`
	RoleHistory []Role        `json:"role_history"`
	Config      Configuration `json:"config"`
}

// GetSession returns the active role, its configuration, and the switch
// history for this session.
func (h *Handler) GetSession(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse{
		CurrentRole: h.session.Current(),
		RoleHistory: h.session.History(),
		Config:      h.session.Config(),
	})
}

type switchRequest struct {
	Role Role `json:"role"`
}

// SwitchRole activates the requested role. Switching to an unregistered
// role is a no-op and still returns the (unchanged) session state.
func (h *Handler) SwitchRole(c echo.Context) error {
	var req switchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.session.Switch(c.Request().Context(), req.Role)
	return h.GetSession(c)
}
