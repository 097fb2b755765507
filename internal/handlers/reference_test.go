package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage/memory"
)

func newReferenceHandler() *ReferenceHandler {
	return NewReferenceHandler(memory.NewGenreStore(), memory.NewMpaStore())
}

func TestReferenceHandler_ListGenres(t *testing.T) {
	h := newReferenceHandler()

	rec := httptest.NewRecorder()
	h.ListGenres(rec, httptest.NewRequest(http.MethodGet, "/genres", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var genres []models.Genre
	if err := json.NewDecoder(rec.Body).Decode(&genres); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(genres) != 6 {
		t.Fatalf("expected 6 genres, got %d", len(genres))
	}
}

func TestReferenceHandler_GetGenre(t *testing.T) {
	h := newReferenceHandler()

	req := httptest.NewRequest(http.MethodGet, "/genres/2", nil)
	req.SetPathValue("id", "2")
	rec := httptest.NewRecorder()
	h.GetGenre(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var genre models.Genre
	if err := json.NewDecoder(rec.Body).Decode(&genre); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if genre.Name != "Drama" {
		t.Fatalf("expected Drama, got %q", genre.Name)
	}
}

func TestReferenceHandler_GetGenreUnknown(t *testing.T) {
	h := newReferenceHandler()

	req := httptest.NewRequest(http.MethodGet, "/genres/99", nil)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()
	h.GetGenre(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error != errorNotFound {
		t.Fatalf("expected %q category, got %q", errorNotFound, resp.Error)
	}
}

func TestReferenceHandler_ListMpaRatings(t *testing.T) {
	h := newReferenceHandler()

	rec := httptest.NewRecorder()
	h.ListMpaRatings(rec, httptest.NewRequest(http.MethodGet, "/mpa", nil))

	var ratings []models.MpaRating
	if err := json.NewDecoder(rec.Body).Decode(&ratings); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(ratings) != 5 {
		t.Fatalf("expected 5 ratings, got %d", len(ratings))
	}
}

func TestReferenceHandler_GetMpaRatingUnknown(t *testing.T) {
	h := newReferenceHandler()

	req := httptest.NewRequest(http.MethodGet, "/mpa/42", nil)
	req.SetPathValue("id", "42")
	rec := httptest.NewRecorder()
	h.GetMpaRating(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
