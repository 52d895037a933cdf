package handler

import (
	"net/http"

	"portal/internal/middleware"
	"portal/internal/service"
	"portal/internal/session"
	"portal/pkg/pagination"
	"portal/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
	roles        *session.Roles
}

func NewAuditHandler(auditService service.AuditService, roles *session.Roles) *AuditHandler {
	return &AuditHandler{auditService: auditService, roles: roles}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/audit-logs")
	group.Use(middleware.RequireAdmin(h.roles))
	{
		group.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs retrieves paginated inventory audit records
// @Summary      Get audit logs
// @Description  Retrieves the trail of inventory mutations and request submissions
// @Tags         audit
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      403    {object}  response.Response
// @Router       /api/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	p := pagination.Parse(c)

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve audit logs: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"total": total,
		"page":  p.Page,
		"limit": p.Limit,
	}))
}
