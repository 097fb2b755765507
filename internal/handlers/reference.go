package handlers

import (
	"net/http"

	"github.com/filmorate/filmorate/internal/storage"
)

// ReferenceHandler serves the read-only genre and MPA rating catalogs.
type ReferenceHandler struct {
	genres storage.GenreStorage
	mpa    storage.MpaStorage
}

func NewReferenceHandler(genres storage.GenreStorage, mpa storage.MpaStorage) *ReferenceHandler {
	return &ReferenceHandler{genres: genres, mpa: mpa}
}

func (h *ReferenceHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genres.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

func (h *ReferenceHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	genre, err := h.genres.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genre)
}

func (h *ReferenceHandler) ListMpaRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.mpa.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}

func (h *ReferenceHandler) GetMpaRating(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	rating, err := h.mpa.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rating)
}
