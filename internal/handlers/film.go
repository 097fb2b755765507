package handlers

import (
	"net/http"
	"strconv"

	"github.com/filmorate/filmorate/internal/logging"
	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/services"
)

const defaultPopularCount = 10

type FilmHandler struct {
	films *services.FilmService
}

func NewFilmHandler(films *services.FilmService) *FilmHandler {
	return &FilmHandler{films: films}
}

func (h *FilmHandler) Create(w http.ResponseWriter, r *http.Request) {
	var film models.Film
	if !decodeBody(w, r, &film) {
		return
	}

	created, err := h.films.Create(r.Context(), &film)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logging.Info("film created", map[string]interface{}{"id": created.ID, "name": created.Name})
	writeJSON(w, http.StatusCreated, created)
}

func (h *FilmHandler) Update(w http.ResponseWriter, r *http.Request) {
	var film models.Film
	if !decodeBody(w, r, &film) {
		return
	}

	updated, err := h.films.Update(r.Context(), &film)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logging.Info("film updated", map[string]interface{}{"id": updated.ID})
	writeJSON(w, http.StatusOK, updated)
}

func (h *FilmHandler) List(w http.ResponseWriter, r *http.Request) {
	films, err := h.films.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, films)
}

func (h *FilmHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	film, err := h.films.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, film)
}

func (h *FilmHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathInt(w, r, "userId")
	if !ok {
		return
	}

	if err := h.films.AddLike(r.Context(), filmID, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	logging.Info("like added", map[string]interface{}{"film_id": filmID, "user_id": userID})
	w.WriteHeader(http.StatusNoContent)
}

func (h *FilmHandler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathInt(w, r, "userId")
	if !ok {
		return
	}

	if err := h.films.RemoveLike(r.Context(), filmID, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	logging.Info("like removed", map[string]interface{}{"film_id": filmID, "user_id": userID})
	w.WriteHeader(http.StatusNoContent)
}

func (h *FilmHandler) Popular(w http.ResponseWriter, r *http.Request) {
	count := defaultPopularCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, errorValidation, "count must be a positive integer")
			return
		}
		count = parsed
	}

	films, err := h.films.Popular(r.Context(), count)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, films)
}
