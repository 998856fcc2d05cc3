package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the HTTP handlers of the API service.
type Handlers struct {
	Ingest  *IngestHandler
	Heatmap *HeatmapHandler
	Asset   *AssetHandler
	Job     *JobHandler
	Health  *HealthHandler
}

// RouterOptions configures NewRouter.
type RouterOptions struct {
	// IngestRateLimit is the sustained ingest requests per second; zero disables limiting.
	IngestRateLimit float64
	// Gatherer backs /metrics. Nil leaves the endpoint unregistered.
	Gatherer prometheus.Gatherer
	// Swagger registers /swagger/*.
	Swagger bool
}

// NewRouter builds the echo instance with every route under /api/v1.
func NewRouter(h Handlers, opts RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	apiV1 := e.Group("/api/v1")
	h.Ingest.RegisterRoutes(apiV1.Group("/ingest"), RateLimit(opts.IngestRateLimit, int(opts.IngestRateLimit)+1))
	h.Heatmap.RegisterRoutes(apiV1.Group("/heatmap"))
	h.Asset.RegisterRoutes(apiV1.Group("/assets"))
	h.Job.RegisterRoutes(apiV1.Group("/jobs"))
	h.Health.RegisterRoutes(e)

	if opts.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	if opts.Swagger {
		e.GET("/swagger/*", swagger.WrapHandler)
		e.GET("/", func(c echo.Context) error {
			return c.Redirect(http.StatusTemporaryRedirect, "/swagger/index.html")
		})
	}

	return e
}
