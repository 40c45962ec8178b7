// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package validation

import (
	"strings"
	"sync"
	"testing"
)

type sampleRequest struct {
	UserID  string  `json:"user_id" validate:"required,notblank,max=16"`
	Text    string  `json:"text,omitempty" validate:"omitempty,max=10"`
	Count   int     `json:"count" validate:"gte=0,lte=5"`
	Mode    string  `json:"mode" validate:"omitempty,oneof=fast slow"`
	Score   float64 `validate:"gte=0"`
	Ignored string  `json:"-"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       sampleRequest
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"valid", sampleRequest{UserID: "alice", Count: 2, Mode: "fast"}, "", "", ""},
		{"missing user", sampleRequest{}, "user_id", "required", "user_id is required"},
		{"blank user", sampleRequest{UserID: "   "}, "user_id", "notblank", "user_id must not be blank"},
		{"long user", sampleRequest{UserID: strings.Repeat("x", 17)}, "user_id", "max", "user_id must be at most 16 characters"},
		{"json name with omitempty", sampleRequest{UserID: "a", Text: strings.Repeat("t", 11)}, "text", "max", "text must be at most 10 characters"},
		{"numeric bound", sampleRequest{UserID: "a", Count: 9}, "count", "lte", "count must be less than or equal to 5"},
		{"oneof", sampleRequest{UserID: "a", Mode: "medium"}, "mode", "oneof", "mode must be one of: fast slow"},
		{"no json tag uses field name", sampleRequest{UserID: "a", Score: -1}, "Score", "gte", "Score must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := ValidateStruct(tt.req)
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
				t.Fatalf("len(Errors()) = %d, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("field/tag = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(sampleRequest{}).ToAPIError()
	if single.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", single.Code)
	}
	if single.Details["field"] != "user_id" {
		t.Errorf("Details[field] = %v, want user_id", single.Details["field"])
	}

	multi := ValidateStruct(sampleRequest{Count: 10, Mode: "x"}).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]any)
	if !ok || len(fields) != 3 {
		t.Fatalf("Details[fields] = %#v, want 3 entries", multi.Details["fields"])
	}
	if !strings.Contains(multi.Message, "user_id is required") || !strings.Contains(multi.Message, ";") {
		t.Errorf("Message = %q, want joined messages", multi.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty Message = %q", empty.Message)
	}
	if (&RequestValidationError{}).Error() != "validation failed" {
		t.Error("empty Error() should be generic")
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	results := make([]any, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = GetValidator()
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatal("GetValidator() returned different instances")
		}
	}
}
