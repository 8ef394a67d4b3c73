// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/tastelens/internal/database"
)

// API error codes
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeDatabase           = "DATABASE_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeRateLimited        = "RATE_LIMIT_EXCEEDED"
)

// storeErrorStatus maps a catalog error to an HTTP status and API error code.
// A closed store or an open breaker is a 503; anything else the store
// returned is a 500. Unknown dimensions are caller errors.
func storeErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, database.ErrUnknownDimension):
		return http.StatusBadRequest, CodeValidation
	case database.IsUnavailable(err):
		return http.StatusServiceUnavailable, CodeServiceUnavailable
	default:
		return http.StatusInternalServerError, CodeDatabase
	}
}
