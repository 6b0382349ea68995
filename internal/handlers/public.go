package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"PetRescue/internal/store"

	"go.uber.org/zap"
)

// Index lists every rescue.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	rescues, err := h.Store.GetRescues(r.Context())
	if err != nil {
		h.Log.Error("list rescues", zap.Error(err))
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, map[string]any{
		"Title":   "Animal Rescues",
		"Rescues": rescues,
	}, "index.html")
}

// RescuePage shows a rescue's profile and the first page of its animals
// that are available for adoption.
func (h *Handler) RescuePage(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "rescueID")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	rescue, err := h.Store.GetRescue(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.Log.Error("get rescue", zap.Int64("rescue_id", id), zap.Error(err))
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	animals, err := h.Store.GetAvailableAnimals(r.Context(), id)
	if err != nil {
		h.Log.Error("available animals", zap.Int64("rescue_id", id), zap.Error(err))
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, map[string]any{
		"Title":   rescue.Name,
		"Rescue":  rescue,
		"Animals": animals,
	}, "rescue.html", "animal_cards.html")
}

// AnimalPage shows one animal with its descriptive attributes.
func (h *Handler) AnimalPage(w http.ResponseWriter, r *http.Request) {
	rescueID, err := urlID(r, "rescueID")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	animalID, err := urlID(r, "animalID")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	animal, err := h.Store.GetAnimal(r.Context(), animalID)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.Log.Error("get animal", zap.Int64("animal_id", animalID), zap.Error(err))
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	// The path carries the rescue id only for the URL shape; a mismatch is
	// treated as not found rather than leaking another rescue's listing.
	if animal.RescueID != rescueID {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, map[string]any{
		"Title":  animal.Name,
		"Animal": animal,
	}, "animal.html")
}

var cardsTmpl = template.Must(template.ParseFS(tplFS, "templates/animal_cards.html"))

// LoadMore returns a raw HTML fragment with the next page of a rescue's
// available animals, for the infinite-scroll loader.
func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	rescueID, err := strconv.ParseInt(r.URL.Query().Get("rescue_id"), 10, 64)
	if err != nil || rescueID <= 0 {
		http.Error(w, "bad rescue_id", http.StatusBadRequest)
		return
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		page = 0
	}
	animals, err := h.Store.GetAvailableAnimalsPage(r.Context(), rescueID, page)
	if err != nil {
		h.Log.Error("load more", zap.Int64("rescue_id", rescueID), zap.Int("page", page), zap.Error(err))
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := cardsTmpl.ExecuteTemplate(w, "animal_cards", map[string]any{"Animals": animals}); err != nil {
		h.Log.Error("render cards", zap.Error(err))
	}
}
