package handler

import (
	"net/http"

	"portal/internal/middleware"
	"portal/internal/model"
	"portal/internal/service"
	"portal/internal/session"
	"portal/pkg/response"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService service.RequestService
	roles          *session.Roles
	submitPerMin   int
}

func NewRequestHandler(requestService service.RequestService, roles *session.Roles, submitPerMin int) *RequestHandler {
	return &RequestHandler{requestService: requestService, roles: roles, submitPerMin: submitPerMin}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/api/requests")
	requests.Use(middleware.RateLimit(h.submitPerMin))
	{
		requests.POST("", h.SubmitRequest)
	}
}

// SubmitRequest validates an asset request and returns the generated document
// @Summary      Submit asset request
// @Description  Validates the submission and, when valid, renders the one-page request form as a downloadable PDF
// @Tags         requests
// @Accept       json
// @Produce      application/pdf
// @Param        payload  body      model.AssetRequest  true  "Asset Request Payload"
// @Success      200      {file}    file
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response{data=object}
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/requests [post]
func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	var req model.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	doc, fieldErrs, err := h.requestService.Submit(c.Request.Context(), string(h.roles.Role()), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, response.ValidationError(http.StatusUnprocessableEntity, fieldErrs))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
