package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

type HTTPServer struct {
	store      Store
	events     Publisher
	bcryptCost int
}

// NewHTTPServer wires the handlers to a store. events may be nil.
func NewHTTPServer(store Store, events Publisher) *HTTPServer {
	return &HTTPServer{
		store:      store,
		events:     events,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (s *HTTPServer) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.handleCreateUser)
		r.Post("/login", s.handleLogin)
		r.Get("/name/{name}", s.handleGetUserByName)
		r.Delete("/name/{name}", s.handleDeleteUserByName)
		r.Get("/{id}", s.handleGetUser)
		r.Put("/{id}", s.handleUpdateUser)
		r.Patch("/{id}", s.handleUpdateUser)
		r.Delete("/{id}", s.handleDeleteUser)
	})

	r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleCreateGame)
		r.Get("/name/{name}", s.handleGetGameByName)
		r.Delete("/name/{name}", s.handleDeleteGameByName)
		r.Get("/{id}", s.handleGetGame)
		r.Put("/{id}", s.handleUpdateGame)
		r.Patch("/{id}", s.handleUpdateGame)
		r.Delete("/{id}", s.handleDeleteGame)
	})

	return r
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "games-api",
	})
}
