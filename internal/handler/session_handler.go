package handler

import (
	"net/http"

	"portal/internal/session"
	"portal/pkg/response"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	roles *session.Roles
}

func NewSessionHandler(roles *session.Roles) *SessionHandler {
	return &SessionHandler{roles: roles}
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/session")
	{
		group.GET("", h.GetSession)
		group.POST("/admin", h.LoginAsAdmin)
		group.POST("/user", h.LoginAsUser)
	}
}

// GetSession returns the current portal role
// @Summary      Get session
// @Description  Returns the current actor role (user or admin)
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]string{"role": string(h.roles.Role())}))
}

// LoginAsAdmin switches the portal into admin mode
// @Summary      Switch to admin
// @Description  Toggles the portal role to admin, exposing mutating inventory actions. Not an authentication boundary.
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/session/admin [post]
func (h *SessionHandler) LoginAsAdmin(c *gin.Context) {
	h.roles.LoginAsAdmin()
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]string{"role": string(h.roles.Role())}))
}

// LoginAsUser switches the portal back to user mode
// @Summary      Switch to user
// @Description  Toggles the portal role to user, hiding mutating inventory actions
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/session/user [post]
func (h *SessionHandler) LoginAsUser(c *gin.Context) {
	h.roles.LoginAsUser()
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]string{"role": string(h.roles.Role())}))
}
