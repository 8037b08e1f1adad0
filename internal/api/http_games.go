package api

import (
	"net/http"
	"strings"
)

const gameNotFound = "Game not found"

type createGameRequest struct {
	Name     string   `json:"name"`
	Likes    *int64   `json:"likes"`
	Comments string   `json:"comments"`
	Price    *float64 `json:"price"`
}

func (s *HTTPServer) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	g, err := s.store.GetGame(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, gameNotFound)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *HTTPServer) handleGetGameByName(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing game name")
		return
	}

	g, err := s.store.GetGameByName(r.Context(), name)
	if err != nil {
		writeStoreError(w, r, err, gameNotFound)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *HTTPServer) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var body createGameRequest
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	name := strings.TrimSpace(body.Name)
	if name == "" || body.Price == nil || *body.Price < 0 {
		writeError(w, http.StatusBadRequest, "Invalid game data. Name and price are required, and price cannot be negative.")
		return
	}

	g := Game{Name: name, Comments: body.Comments, Price: *body.Price}
	if body.Likes != nil {
		g.Likes = *body.Likes
	}

	created, err := s.store.CreateGame(r.Context(), g)
	if err != nil {
		writeStoreError(w, r, err, gameNotFound)
		return
	}

	s.publish(r.Context(), eventGameCreated, created)
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateGame serves both PUT and PATCH; only the supplied fields change.
func (s *HTTPServer) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	var patch GamePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeDecodeError(w, err)
		return
	}
	if err := patch.Validate(); err != nil {
		writeStoreError(w, r, err, gameNotFound)
		return
	}

	updated, err := s.store.UpdateGame(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, r, err, gameNotFound)
		return
	}

	s.publish(r.Context(), eventGameUpdated, updated)
	writeJSON(w, http.StatusOK, updated)
}

func (s *HTTPServer) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	if err := s.store.DeleteGame(r.Context(), id); err != nil {
		writeStoreError(w, r, err, gameNotFound)
		return
	}

	s.publish(r.Context(), eventGameDeleted, map[string]any{"id": id})
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleDeleteGameByName(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing game name")
		return
	}

	if err := s.store.DeleteGameByName(r.Context(), name); err != nil {
		writeStoreError(w, r, err, gameNotFound)
		return
	}

	s.publish(r.Context(), eventGameDeleted, map[string]any{"name": name})
	w.WriteHeader(http.StatusNoContent)
}
