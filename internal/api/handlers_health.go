// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/soundtrail/internal/middleware"
	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/selection"
)

// PerformanceReport is the data of GET /health/performance.
type PerformanceReport struct {
	Endpoints []middleware.EndpointStats  `json:"endpoints"`
	Recent    []middleware.RequestMetrics `json:"recent"`
}

func (h *Handler) healthStatus(r *http.Request) (models.HealthStatus, error) {
	status, err := h.controller.Status(r.Context())
	if err != nil {
		return models.HealthStatus{}, err
	}

	health := models.HealthStatus{
		Status:        "healthy",
		Version:       Version,
		DatasetState:  string(status.State),
		RecordCount:   status.Records,
		Uptime:        time.Since(h.startTime).Seconds(),
		LastLoadedAt:  status.LoadedAt,
		LoadErrorText: status.LoadError,
	}
	if h.config != nil {
		health.StoreBackend = h.config.Store.Backend
	}
	switch status.State {
	case selection.DatasetLoading:
		health.Status = "starting"
	case selection.DatasetFailed:
		health.Status = "degraded"
	}
	return health, nil
}

// Health reports process and dataset status. It answers 200 whenever the
// controller responds; a failed load is reported as degraded.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health, err := h.healthStatus(r)
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Selection controller not responding", err)
		return
	}
	respondSuccess(w, health, models.Metadata{})
}

// HealthReady answers 200 once the dataset is loaded and 503 before that
// or after a failed load.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	health, err := h.healthStatus(r)
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Selection controller not responding", err)
		return
	}
	if health.DatasetState != string(selection.DatasetReady) {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Dataset is "+health.DatasetState, nil)
		return
	}
	respondSuccess(w, health, models.Metadata{})
}

// HealthPerformance returns per-endpoint latency statistics and the most
// recent requests.
func (h *Handler) HealthPerformance(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, PerformanceReport{
		Endpoints: h.perfMon.GetStats(),
		Recent:    h.perfMon.GetRecentMetrics(20),
	}, models.Metadata{})
}
