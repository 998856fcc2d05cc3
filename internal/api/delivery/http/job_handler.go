package http

import (
	"net/http"
	"strings"

	"golang-bias-heatmap/internal/api/dto"
	"golang-bias-heatmap/internal/api/service"
	"golang-bias-heatmap/pkg/logger"

	"github.com/labstack/echo/v4"
)

// JobHandler handles job triggers.
type JobHandler struct {
	jobService service.JobService
	logger     *logger.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService service.JobService, logger *logger.Logger) *JobHandler {
	return &JobHandler{jobService: jobService, logger: logger}
}

// RegisterRoutes registers the job routes to the Echo group.
func (h *JobHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/recompute-bias", h.RecomputeBias)
}

// RecomputeBias godoc
// @Summary Queue a bias recomputation
// @Description Queues a score task for the asset, or for every known asset when none is given
// @Tags jobs
// @Produce  json
// @Param   asset  query    string false    "Asset symbol"
// @Success 202 {object} dto.RecomputeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /jobs/recompute-bias [post]
func (h *JobHandler) RecomputeBias(c echo.Context) error {
	var query dto.RecomputeQuery
	if err := bindQuery(c, &query); err != nil {
		return respondError(c, h.logger, err)
	}

	resp, err := h.jobService.RecomputeBias(c.Request().Context(), strings.TrimSpace(query.Asset))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusAccepted, resp)
}
