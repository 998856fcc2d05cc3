package service

import (
	"context"
	"sort"

	"golang-bias-heatmap/internal/api/dto"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// HealthService reports the status of the service's dependencies.
type HealthService interface {
	Check(ctx context.Context) (*dto.HealthResponse, bool)
}

// NewHealthService creates a health service running checks by name.
func NewHealthService(version string, checks map[string]Check) HealthService {
	return &healthService{version: version, checks: checks}
}

type healthService struct {
	version string
	checks  map[string]Check
}

// Check runs every probe. The bool is false when any probe failed.
func (s *healthService) Check(ctx context.Context) (*dto.HealthResponse, bool) {
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := &dto.HealthResponse{Status: "ok", Version: s.version, Checks: make(map[string]string, len(names))}
	healthy := true
	for _, name := range names {
		if err := s.checks[name](ctx); err != nil {
			resp.Checks[name] = err.Error()
			healthy = false
			continue
		}
		resp.Checks[name] = "ok"
	}
	if !healthy {
		resp.Status = "degraded"
	}
	return resp, healthy
}
