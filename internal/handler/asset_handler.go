package handler

import (
	"errors"
	"net/http"
	"strconv"

	"portal/internal/middleware"
	"portal/internal/service"
	"portal/internal/session"
	"portal/pkg/pagination"
	"portal/pkg/response"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	inventoryService service.InventoryService
	qrService        service.QRService
	roles            *session.Roles
}

func NewAssetHandler(inventoryService service.InventoryService, qrService service.QRService, roles *session.Roles) *AssetHandler {
	return &AssetHandler{inventoryService: inventoryService, qrService: qrService, roles: roles}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	assets := router.Group("/api/assets")
	{
		assets.GET("", h.ListAssets)
		assets.GET("/export", h.ExportAssets)
		assets.GET("/:id", h.GetAsset)
		assets.GET("/:id/qr", h.GetAssetQR)
		assets.POST("", middleware.RequireAdmin(h.roles), h.CreateAsset)
		assets.PUT("/:id", middleware.RequireAdmin(h.roles), h.UpdateAsset)
		assets.DELETE("/:id", middleware.RequireAdmin(h.roles), h.DeleteAsset)
	}
}

// ListAssets returns the filtered, sorted inventory view
// @Summary      List assets
// @Description  Retrieves the inventory view filtered by search text and status, sorted by the requested field
// @Tags         assets
// @Produce      json
// @Param        search     query     string  false  "Case-insensitive match against name, id and status"
// @Param        status     query     string  false  "Exact status filter (Available, In Use, Retired)"
// @Param        sort_field query     string  false  "Sort key: name, id or status (default name)"
// @Param        sort_asc   query     bool    false  "Sort ascending (default true)"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Number of items per page (default 20)"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	sortAsc, err := strconv.ParseBool(c.DefaultQuery("sort_asc", "true"))
	if err != nil {
		sortAsc = true
	}
	q := service.Query{
		Search:        c.Query("search"),
		Status:        c.Query("status"),
		SortField:     c.DefaultQuery("sort_field", "name"),
		SortAscending: sortAsc,
	}

	view := h.inventoryService.ListAssets(q)
	p := pagination.Parse(c)

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"assets": pagination.Slice(view, p),
		"total":  len(view),
		"page":   p.Page,
		"limit":  p.Limit,
	}))
}

// GetAsset returns one asset by id
// @Summary      Get asset
// @Description  Retrieves a single asset; unknown ids yield a not-found state
// @Tags         assets
// @Produce      json
// @Param        id  path  string  true  "Asset ID"
// @Success      200  {object}  response.Response{data=model.Asset}
// @Failure      404  {object}  response.Response
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, found := h.inventoryService.GetAsset(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Asset not found"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, asset))
}

// CreateAsset adds a new asset to the inventory
// @Summary      Create asset
// @Description  Generates a fresh id, appends the asset and persists the collection
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateAssetRequest  true  "Create Asset Payload"
// @Success      201      {object}  response.Response{data=model.Asset}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req service.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	asset, err := h.inventoryService.CreateAsset(c.Request.Context(), string(h.roles.Role()), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, asset))
}

// UpdateAsset updates an existing asset's name and/or status
// @Summary      Update asset
// @Description  Merges the given fields into the asset; id and identity are preserved
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Asset ID"
// @Param        payload  body      service.UpdateAssetRequest  true  "Update Asset Payload"
// @Success      200      {object}  response.Response{data=model.Asset}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var req service.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	asset, found, err := h.inventoryService.UpdateAsset(c.Request.Context(), string(h.roles.Role()), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Asset not found"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, asset))
}

// DeleteAsset removes an asset from the inventory
// @Summary      Delete asset
// @Description  Removes the matching asset and persists the collection
// @Tags         assets
// @Produce      json
// @Param        id  path  string  true  "Asset ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id := c.Param("id")
	if !h.inventoryService.DeleteAsset(c.Request.Context(), string(h.roles.Role()), id) {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Asset not found"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]string{"id": id}))
}

// ExportAssets downloads the full inventory as a spreadsheet
// @Summary      Export assets
// @Description  Serializes the full asset collection to an xlsx workbook, one row per asset
// @Tags         assets
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Failure      500  {object}  response.Response
// @Router       /api/assets/export [get]
func (h *AssetHandler) ExportAssets(c *gin.Context) {
	data, name, err := h.inventoryService.ExportAssets(c.Request.Context(), string(h.roles.Role()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to export assets: "+err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GetAssetQR downloads the QR code image for an asset's deep link
// @Summary      Get asset QR code
// @Description  Fetches a QR code image encoding the asset's detail-page link from the configured rendering endpoint
// @Tags         assets
// @Produce      png
// @Param        id  path  string  true  "Asset ID"
// @Success      200  {file}  file
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /api/assets/{id}/qr [get]
func (h *AssetHandler) GetAssetQR(c *gin.Context) {
	img, name, err := h.qrService.Image(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrAssetNotFound) {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Asset not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, response.Error(http.StatusBadGateway, "Failed to fetch QR code: "+err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "image/png", img)
}
