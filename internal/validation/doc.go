// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

// Package validation validates API request bodies with go-playground/validator.
//
// A single validator instance is built once and shared; it caches struct
// metadata so repeated validation of the same request types is cheap.
// Errors name fields by their json tag and convert to the VALIDATION_ERROR
// API response:
//
//	type rangeRequest struct {
//	    Start string `json:"start" validate:"required,isodate"`
//	    End   string `json:"end" validate:"required,isodate"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// The range endpoint does not use isodate; its date errors are reported as
// INVALID_DATE by the selection layer.
package validation
