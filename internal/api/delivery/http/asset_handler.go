package http

import (
	"net/http"
	"time"

	"golang-bias-heatmap/internal/api/dto"
	"golang-bias-heatmap/internal/api/service"
	"golang-bias-heatmap/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AssetHandler handles asset reads.
type AssetHandler struct {
	assetService service.AssetService
	logger       *logger.Logger
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService service.AssetService, logger *logger.Logger) *AssetHandler {
	return &AssetHandler{assetService: assetService, logger: logger}
}

// RegisterRoutes registers the asset routes to the Echo group.
func (h *AssetHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListAssets)
	g.GET("/:symbol/indicators", h.GetIndicators)
	g.GET("/:symbol/scores", h.GetScores)
}

// ListAssets godoc
// @Summary List assets
// @Description All known assets ordered by symbol
// @Tags assets
// @Produce  json
// @Success 200 {array} dto.AssetResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assets [get]
func (h *AssetHandler) ListAssets(c echo.Context) error {
	assets, err := h.assetService.ListAssets(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, assets)
}

// GetIndicators godoc
// @Summary Get the indicator history of an asset
// @Description Indicators in ascending timestamp order, optionally bounded by from and to
// @Tags assets
// @Produce  json
// @Param   symbol  path    string true    "Asset symbol"
// @Param   from    query   string false   "Inclusive lower bound (RFC 3339)"
// @Param   to      query   string false   "Inclusive upper bound (RFC 3339)"
// @Success 200 {array} dto.IndicatorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assets/{symbol}/indicators [get]
func (h *AssetHandler) GetIndicators(c echo.Context) error {
	var query dto.IndicatorQuery
	if err := bindQuery(c, &query); err != nil {
		return respondError(c, h.logger, err)
	}

	indicators, err := h.assetService.GetIndicators(c.Request().Context(), c.Param("symbol"), parseBound(query.From), parseBound(query.To))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, indicators)
}

// GetScores godoc
// @Summary Get the score history of an asset
// @Description Score snapshots, newest first
// @Tags assets
// @Produce  json
// @Param   symbol  path    string true    "Asset symbol"
// @Param   limit   query   int    false   "Maximum number of snapshots (default 20)"
// @Success 200 {array} dto.ScoreResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assets/{symbol}/scores [get]
func (h *AssetHandler) GetScores(c echo.Context) error {
	var query dto.ScoreQuery
	if err := bindQuery(c, &query); err != nil {
		return respondError(c, h.logger, err)
	}

	scores, err := h.assetService.GetScores(c.Request().Context(), c.Param("symbol"), query.Limit)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, scores)
}

// parseBound parses an already validated RFC 3339 bound. Empty means open.
func parseBound(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
