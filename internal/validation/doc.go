// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

// Package validation validates API request structs with go-playground/validator.
//
// A single validator instance is shared by all handlers. Errors name the query
// parameter from the field's `query` tag and convert to the VALIDATION_ERROR
// API error:
//
//	type request struct {
//	    Cities []string `query:"city" validate:"max=50,dive,max=100,filtervalue"`
//	    TopN   int      `query:"top_n" validate:"min=1,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Custom tags:
//   - filtervalue: rejects control characters
package validation
