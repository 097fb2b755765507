package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/filmorate/filmorate/internal/logging"
	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

// Error categories exposed to clients. Internal details never leak past the
// message of a validation or not-found error.
const (
	errorValidation = "Validation error"
	errorNotFound   = "Not found"
	errorInternal   = "Internal error"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, category, message string) {
	writeJSON(w, status, ErrorResponse{Error: category, Message: message})
}

// writeServiceError maps the error taxonomy onto HTTP statuses: validation
// failures to 400, unknown entities to 404, everything else to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, errorValidation, ve.Error())
	case errors.Is(err, storage.ErrSelfFriendship):
		writeError(w, http.StatusBadRequest, errorValidation, err.Error())
	case errors.Is(err, storage.ErrFilmNotFound),
		errors.Is(err, storage.ErrUserNotFound),
		errors.Is(err, storage.ErrGenreNotFound),
		errors.Is(err, storage.ErrMpaNotFound),
		errors.Is(err, storage.ErrFriendshipNotFound):
		writeError(w, http.StatusNotFound, errorNotFound, err.Error())
	default:
		logging.Error("request failed", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, errorInternal, "internal server error")
	}
}

// pathInt parses an integer path parameter. The second return value reports
// whether parsing succeeded; on failure a 400 has already been written.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, errorValidation, "invalid "+name+" path parameter")
		return 0, false
	}
	return value, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errorValidation, "invalid request body")
		return false
	}
	return true
}
