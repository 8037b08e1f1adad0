package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const userNotFound = "User not found"

type createUserRequest struct {
	Name     string `json:"name"`
	IsAdmin  bool   `json:"isAdmin"`
	Password string `json:"password"`
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, userNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *HTTPServer) handleGetUserByName(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing user name")
		return
	}

	u, err := s.store.GetUserByName(r.Context(), name)
	if err != nil {
		writeStoreError(w, r, err, userNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var body createUserRequest
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	name := strings.TrimSpace(body.Name)
	if name == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "name and password are required")
		return
	}

	hash, err := s.hashPassword(body.Password)
	if err != nil {
		log.Error().Err(err).Msg("create user: hash password")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	created, err := s.store.CreateUser(r.Context(), User{Name: name, IsAdmin: body.IsAdmin, Password: hash})
	if err != nil {
		writeStoreError(w, r, err, userNotFound)
		return
	}

	s.publish(r.Context(), eventUserCreated, created)
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateUser serves both PUT and PATCH. A new password is hashed
// before it is stored.
func (s *HTTPServer) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var patch UserPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeDecodeError(w, err)
		return
	}

	if patch.Password != nil && *patch.Password != "" {
		hash, err := s.hashPassword(*patch.Password)
		if err != nil {
			log.Error().Err(err).Msg("update user: hash password")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		patch.Password = &hash
	}

	updated, err := s.store.UpdateUser(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, r, err, userNotFound)
		return
	}

	s.publish(r.Context(), eventUserUpdated, updated)
	writeJSON(w, http.StatusOK, updated)
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		writeStoreError(w, r, err, userNotFound)
		return
	}

	s.publish(r.Context(), eventUserDeleted, map[string]any{"id": id})
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleDeleteUserByName(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing user name")
		return
	}

	if err := s.store.DeleteUserByName(r.Context(), name); err != nil {
		writeStoreError(w, r, err, userNotFound)
		return
	}

	s.publish(r.Context(), eventUserDeleted, map[string]any{"name": name})
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "name and password are required")
		return
	}

	u, err := s.store.GetUserByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeStoreError(w, r, err, userNotFound)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(body.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (s *HTTPServer) hashPassword(password string) (string, error) {
	cost := s.bcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
