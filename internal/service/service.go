// Package service exposes the ledger core, members and chores over a thin
// JSON/HTTP adapter. Handlers translate requests into core operations and
// map the core's error kinds onto status codes; they hold no business
// logic of their own.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chorecast/chorecast/internal/chores"
	"github.com/chorecast/chorecast/internal/ledger"
	"github.com/chorecast/chorecast/internal/money"
)

// errorResponse is the JSON body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps the core's validation errors onto status codes:
// invalid input 400, unknown member 404, nothing to settle 409,
// anything else 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, ledger.ErrEmptyParticipants),
		errors.Is(err, chores.ErrInvalidChore):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrUnknownMember),
		errors.Is(err, chores.ErrChoreNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ledger.ErrNoOutstandingDebt):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
		// Internal detail stays in the logs.
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeJSON parses the request body. A bad amount string inside the body
// carries money.ErrInvalidAmount through the wrap, so writeError still
// maps it to 400 with its own message.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeBadRequest reports a malformed request body.
func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}
