package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rayan1381m/Back-end-V3/internal/sqlpatch"
)

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeStoreError maps store and builder errors onto HTTP statuses.
// notFound is the message used for ErrNotFound.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var ve *validationError
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.msg)
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, "name already taken")
	case errors.Is(err, sqlpatch.ErrEmptyUpdate):
		log.Warn().Str("path", r.URL.Path).Msg("update without fields")
		writeError(w, http.StatusInternalServerError, "no updatable fields supplied")
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("store failure")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// nameParam returns the decoded {name} segment. chi hands back the escaped
// form when the request path carries escapes such as %2F.
func nameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		raw = name
	}
	return strings.TrimSpace(raw)
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeDecodeError answers 413 when the body hit the size limit mid-stream
// and 400 for anything else.
func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, "invalid JSON body")
}
