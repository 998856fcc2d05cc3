package http

import (
	"net/http"
	"strings"

	"golang-bias-heatmap/internal/api/dto"
	"golang-bias-heatmap/internal/api/service"
	"golang-bias-heatmap/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HeatmapHandler handles heatmap reads.
type HeatmapHandler struct {
	heatmapService service.HeatmapService
	logger         *logger.Logger
}

// NewHeatmapHandler creates a new HeatmapHandler.
func NewHeatmapHandler(heatmapService service.HeatmapService, logger *logger.Logger) *HeatmapHandler {
	return &HeatmapHandler{heatmapService: heatmapService, logger: logger}
}

// RegisterRoutes registers the heatmap routes to the Echo group.
func (h *HeatmapHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetHeatmap)
	g.GET("/batch", h.GetHeatmaps)
}

// GetHeatmap godoc
// @Summary Get the heatmap of an asset
// @Description Latest score snapshot of the asset with its pillar breakdown
// @Tags heatmap
// @Produce  json
// @Param   asset  query    string true    "Asset symbol"
// @Success 200 {object} dto.HeatmapResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /heatmap [get]
func (h *HeatmapHandler) GetHeatmap(c echo.Context) error {
	symbol := strings.TrimSpace(c.QueryParam("asset"))
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "asset is required", Code: "ERR_VALIDATION"})
	}

	resp, err := h.heatmapService.GetHeatmap(c.Request().Context(), symbol)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetHeatmaps godoc
// @Summary Get heatmaps of several assets
// @Description One item per requested asset in request order. Assets without a score get a neutral item and an entry in errors.
// @Tags heatmap
// @Produce  json
// @Param   assets  query    string true    "Comma-separated asset symbols"
// @Success 200 {object} dto.HeatmapBatchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /heatmap/batch [get]
func (h *HeatmapHandler) GetHeatmaps(c echo.Context) error {
	var query dto.HeatmapBatchQuery
	if err := bindQuery(c, &query); err != nil {
		return respondError(c, h.logger, err)
	}

	resp, err := h.heatmapService.GetHeatmaps(c.Request().Context(), splitSymbols(query.Assets))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func splitSymbols(raw string) []string {
	var symbols []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}
