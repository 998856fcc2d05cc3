package http

import (
	"net/http"

	"golang-bias-heatmap/internal/api/dto"
	"golang-bias-heatmap/internal/api/service"
	"golang-bias-heatmap/pkg/logger"

	"github.com/labstack/echo/v4"
)

// IngestHandler handles event intake.
type IngestHandler struct {
	ingestService service.IngestService
	logger        *logger.Logger
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestService service.IngestService, logger *logger.Logger) *IngestHandler {
	return &IngestHandler{ingestService: ingestService, logger: logger}
}

// RegisterRoutes registers the ingest routes to the Echo group.
func (h *IngestHandler) RegisterRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/events", h.IngestEvents, m...)
}

// IngestEvents godoc
// @Summary Ingest a batch of events
// @Description Admits each event independently. Already admitted trace ids are counted as duplicates; invalid events are listed in rejected.
// @Tags ingest
// @Accept  json
// @Produce  json
// @Param   batch  body    dto.IngestRequest   true    "Events to ingest"
// @Success 202 {object} dto.IngestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /ingest/events [post]
func (h *IngestHandler) IngestEvents(c echo.Context) error {
	var req dto.IngestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload", Code: "ERR_VALIDATION"})
	}

	resp, err := h.ingestService.Ingest(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusAccepted, resp)
}
