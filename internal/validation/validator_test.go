// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type yearRequest struct {
	Year int `json:"year" validate:"required,min=1,max=9999"`
}

type dateRequest struct {
	Start string `json:"start" validate:"required,isodate"`
	End   string `json:"end" validate:"omitempty,isodate"`
}

type widthRequest struct {
	Region string `json:"region" validate:"required,region"`
	Width  int    `json:"width" validate:"gt=0,lte=10000"`
}

type dragRequest struct {
	Type   string `json:"type" validate:"required,oneof=pointer_down pointer_move pointer_up"`
	Handle string `json:"handle,omitempty" validate:"omitempty,oneof=start end"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{name: "valid year", input: &yearRequest{Year: 2024}},
		{name: "missing year", input: &yearRequest{}, wantField: "year", wantTag: "required", wantMsg: "year is required"},
		{name: "year too large", input: &yearRequest{Year: 10000}, wantField: "year", wantTag: "max", wantMsg: "year must be at most 9999"},
		{name: "valid dates", input: &dateRequest{Start: "2024-02-29", End: "2024-03-01"}},
		{name: "optional end", input: &dateRequest{Start: "2024-02-29"}},
		{name: "impossible date", input: &dateRequest{Start: "2023-02-29"}, wantField: "start", wantTag: "isodate", wantMsg: "start must be a date in YYYY-MM-DD format"},
		{name: "loose date", input: &dateRequest{Start: "2024-01-01", End: "2024-1-1"}, wantField: "end", wantTag: "isodate"},
		{name: "valid region", input: &widthRequest{Region: "hour_of_day", Width: 320}},
		{name: "unknown region", input: &widthRequest{Region: "map", Width: 320}, wantField: "region", wantTag: "region", wantMsg: "region is not a dashboard region"},
		{name: "zero width", input: &widthRequest{Region: "calendar"}, wantField: "width", wantTag: "gt", wantMsg: "width must be greater than 0"},
		{name: "valid drag", input: &dragRequest{Type: "pointer_down", Handle: "end"}},
		{name: "bad drag type", input: &dragRequest{Type: "click"}, wantField: "type", wantTag: "oneof", wantMsg: "type must be one of: pointer_down pointer_move pointer_up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := ValidateStruct(tt.input)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("field/tag = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
			if tt.wantMsg != "" && errs[0].Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&yearRequest{})
	apiErr := single.ToAPIError()
	if apiErr.Code != CodeValidationError {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if apiErr.Details["field"] != "year" || apiErr.Details["tag"] != "required" {
		t.Errorf("Details = %v", apiErr.Details)
	}

	multi := ValidateStruct(&widthRequest{Region: "map", Width: -1})
	if multi == nil || len(multi.Errors()) != 2 {
		t.Fatalf("want two errors, got %v", multi)
	}
	apiErr = multi.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("fields = %#v", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "; ") {
		t.Errorf("combined message = %q", apiErr.Message)
	}
	if multi.Error() != apiErr.Message {
		t.Errorf("Error() = %q, message = %q", multi.Error(), apiErr.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Code != CodeValidationError || empty.Message != "Validation failed" {
		t.Errorf("empty = %+v", empty)
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct("not a struct")
	if verr == nil {
		t.Fatal("want error for non-struct input")
	}
	if verr.Errors()[0].Field() != "unknown" {
		t.Errorf("field = %q", verr.Errors()[0].Field())
	}
}
