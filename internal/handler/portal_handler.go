package handler

import (
	"net/http"

	"portal/config"
	"portal/internal/model"
	"portal/pkg/response"

	"github.com/gin-gonic/gin"
)

// PortalHandler serves the portal's static surface: landing-tile links to the
// external hosted form service (opaque navigation targets) and the option
// lists the request form renders.
type PortalHandler struct {
	cfg config.PortalConfig
}

func NewPortalHandler(cfg config.PortalConfig) *PortalHandler {
	return &PortalHandler{cfg: cfg}
}

func (h *PortalHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/portal")
	{
		group.GET("/links", h.GetLinks)
		group.GET("/options", h.GetFormOptions)
	}
}

// GetLinks returns the landing page's outbound tile targets
// @Summary      Get portal links
// @Description  Returns the external form links the landing tiles navigate to
// @Tags         portal
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/portal/links [get]
func (h *PortalHandler) GetLinks(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]string{
		"request_form": h.cfg.RequestFormURL,
		"support_form": h.cfg.SupportFormURL,
	}))
}

// GetFormOptions returns the request form's option lists
// @Summary      Get form options
// @Description  Returns the department, asset type, priority and status option lists
// @Tags         portal
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/portal/options [get]
func (h *PortalHandler) GetFormOptions(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"departments": model.Departments,
		"asset_types": model.AssetTypes,
		"priorities":  model.Priorities,
		"statuses":    model.AssetStatuses,
	}))
}
