// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP handlers for the inkwell API.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"inkwell/internal/models"
)

// errorResponse is the JSON body returned for all failed requests.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON marshals v and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response", "error", err)
	}
}

// writeError maps a domain error to an HTTP status and writes the JSON
// error body. Unknown errors become 500 with a generic message so internal
// details never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	var status int
	msg := err.Error()

	switch models.KindOf(err) {
	case models.KindValidation, models.KindInvalidReference:
		status = http.StatusBadRequest
	case models.KindNotFound:
		status = http.StatusNotFound
	case models.KindUnauthorized:
		status = http.StatusUnauthorized
	case models.KindStorageUnavailable, models.KindDatabaseUnavailable:
		status = http.StatusServiceUnavailable
		slog.Error("dependency unavailable", "error", err)
	default:
		status = http.StatusInternalServerError
		msg = "internal server error"
		slog.Error("unhandled error", "error", err)
	}

	writeJSON(w, status, errorResponse{Error: msg})
}
