// Package response writes JSON bodies and the {"detail": ...} error envelope
// shared by all handlers.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/stat-atlas/pkg/models/api"
	"github.com/de-tools/stat-atlas/pkg/services/charts"
	"github.com/de-tools/stat-atlas/pkg/store/upstream"
	"github.com/de-tools/stat-atlas/pkg/transform"
	"github.com/rs/zerolog"
)

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func WriteDetail(w http.ResponseWriter, r *http.Request, status int, detail string) {
	WriteJSON(w, r, status, api.ErrorResponse{Detail: detail})
}

// WriteError maps err to a status code and writes it as the error envelope.
// Unclassified errors are logged and reported as 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Int("status", status).
			Msg("request failed")
	}

	detail := err.Error()
	var fetchErr *upstream.FetchError
	if errors.As(err, &fetchErr) {
		detail = fetchErr.Error()
	}
	WriteDetail(w, r, status, detail)
}

func StatusOf(err error) int {
	var fetchErr *upstream.FetchError
	switch {
	case errors.As(err, &fetchErr):
		return fetchErr.HTTPStatus()
	case errors.Is(err, transform.ErrLengthMismatch), errors.Is(err, transform.ErrMalformedSegment):
		return http.StatusBadGateway
	case errors.Is(err, charts.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, charts.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, charts.ErrFolderInUse), errors.Is(err, charts.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
