// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package api

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/soundtrail/internal/logging"
	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/selection"
	"github.com/tomtom215/soundtrail/internal/validation"
)

// Error codes that do not come from the selection package.
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 64 * 1024

// sanitizeLogValue replaces control characters so request data cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with an ETag of the body.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("ETag", generateETag(data))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("Failed to write JSON response")
	}
}

func generateETag(data []byte) string {
	h := fnv.New32a()
	_, _ = h.Write(data)
	return `"` + strconv.FormatUint(uint64(h.Sum32()), 16) + `"`
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, data interface{}, meta models.Metadata) {
	meta.Timestamp = time.Now()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	})
}

// snapshotMeta describes the snapshot a response was produced from.
func snapshotMeta(snap *selection.Snapshot, start time.Time) models.Metadata {
	meta := models.Metadata{QueryTimeMS: time.Since(start).Milliseconds()}
	if snap != nil {
		meta.Version = snap.Version
		meta.Cached = snap.Cached
	}
	return meta
}

// respondError sends an error response. err, when set, is logged with the
// request ID.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message}, err)
}

func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	if err != nil {
		ev := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			ev = logging.Ctx(r.Context()).Error()
		}
		ev.Str("code", sanitizeLogValue(apiErr.Code)).
			Str("error", sanitizeLogValue(err.Error())).
			Str("path", r.URL.Path).
			Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error:    apiErr,
	})
}

// respondSelectionError maps a controller error to its status and code.
func respondSelectionError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, selection.ErrControllerStopped) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Dashboard is not accepting commands", err)
		return
	}

	code := selection.ErrorCode(err)
	respondError(w, r, statusForCode(code), code, err.Error(), err)
}

// statusForCode returns the HTTP status of a selection error code.
func statusForCode(code string) int {
	switch code {
	case selection.CodeDatasetLoading, selection.CodeDatasetUnavailable:
		return http.StatusServiceUnavailable
	case selection.CodeInvalidDate, selection.CodeInvalidYear, selection.CodeInvalidDrag,
		validation.CodeValidationError, ErrCodeInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeAndValidate reads a JSON body into v and validates it. On failure
// it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, r, http.StatusRequestEntityTooLarge, ErrCodeInvalidRequest, "Request body too large", err)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request body", err)
		return false
	}
	if apiErr := validateRequest(v); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return false
	}
	return true
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}
