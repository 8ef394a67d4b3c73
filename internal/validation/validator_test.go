// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package validation

import (
	"strings"
	"testing"
)

type filterRequest struct {
	Cities      []string `query:"city" validate:"max=3,dive,max=20,filtervalue"`
	OnlineOrder string   `query:"online_order" validate:"omitempty,oneof=any yes no"`
	TopN        int      `query:"top_n" validate:"min=1,max=100"`
	Note        string   `validate:"omitempty,max=5"`
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name string
		req  filterRequest
	}{
		{name: "minimal", req: filterRequest{TopN: 1}},
		{name: "full", req: filterRequest{Cities: []string{"BTM", "Koramangala"}, OnlineOrder: "yes", TopN: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.req); err != nil {
				t.Errorf("ValidateStruct() = %v, want nil", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		req       filterRequest
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:      "top_n too large",
			req:       filterRequest{TopN: 101},
			wantField: "top_n",
			wantTag:   "max",
			wantMsg:   "top_n must be at most 100",
		},
		{
			name:      "top_n zero",
			req:       filterRequest{TopN: 0},
			wantField: "top_n",
			wantTag:   "min",
			wantMsg:   "top_n must be at least 1",
		},
		{
			name:      "online order",
			req:       filterRequest{TopN: 5, OnlineOrder: "sometimes"},
			wantField: "online_order",
			wantTag:   "oneof",
			wantMsg:   "online_order must be one of: any yes no",
		},
		{
			name:      "too many cities",
			req:       filterRequest{TopN: 5, Cities: []string{"a", "b", "c", "d"}},
			wantField: "city",
			wantTag:   "max",
			wantMsg:   "city must be at most 3 values",
		},
		{
			name:      "control character",
			req:       filterRequest{TopN: 5, Cities: []string{"BTM\x00"}},
			wantField: "city[0]",
			wantTag:   "filtervalue",
			wantMsg:   "city[0] must not contain control characters",
		},
		{
			name:      "long city",
			req:       filterRequest{TopN: 5, Cities: []string{strings.Repeat("x", 21)}},
			wantField: "city[0]",
			wantTag:   "max",
			wantMsg:   "city[0] must be at most 20 characters",
		},
		{
			name:      "untagged field keeps its name",
			req:       filterRequest{TopN: 5, Note: "too long"},
			wantField: "Note",
			wantTag:   "max",
			wantMsg:   "Note must be at most 5 characters",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
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
			if verr.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", verr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	single := ValidateStruct(&filterRequest{TopN: 0})
	apiErr := single.ToAPIError()
	if apiErr.Code != ErrorCode {
		t.Errorf("Code = %q, want %q", apiErr.Code, ErrorCode)
	}
	if apiErr.Details["field"] != "top_n" || apiErr.Details["tag"] != "min" || apiErr.Details["param"] != "1" {
		t.Errorf("Details = %v", apiErr.Details)
	}

	multi := ValidateStruct(&filterRequest{TopN: 0, OnlineOrder: "x"})
	apiErr = multi.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details = %v, want two fields", apiErr.Details)
	}
	for _, f := range fields {
		if f["message"] == "" || f["message"] == nil {
			t.Errorf("field entry without message: %v", f)
		}
		if _, leaked := f["value"]; leaked {
			t.Errorf("list entries should not echo values: %v", f)
		}
	}
	if !strings.Contains(apiErr.Message, "online_order") || !strings.Contains(apiErr.Message, "top_n") {
		t.Errorf("Message = %q", apiErr.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty Message = %q", empty.Message)
	}
}
