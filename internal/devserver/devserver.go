// Package devserver is a self-contained, in-memory implementation of the
// lab inventory backend contract. It exists for local development and for
// the test suite; it is not the production backend.
package devserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	users   *UserStore
	items   *ItemStore
	revoked TokenStore
	secret  []byte
	logins  *loginLimiter
}

// New builds a server signing tokens with secret. revoked may be nil, in
// which case revocation is tracked in process memory.
func New(secret string, revoked TokenStore) *Server {
	if revoked == nil {
		revoked = NewMemoryTokenStore()
	}
	return &Server{
		users:   NewUserStore(),
		items:   NewItemStore(),
		revoked: revoked,
		secret:  []byte(secret),
		logins:  newLoginLimiter(),
	}
}

// Handler serves the backend contract relative to the client's base URL:
// /auth/*, /users/profile and /inventory.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Post("/auth/logout", s.handleLogout)
		r.Get("/users/profile", s.handleProfile)
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", s.handleListItems)
			r.Post("/", s.handleCreateItem)
			r.Get("/{id}", s.handleGetItem)
			r.Put("/{id}", s.handleUpdateItem)
			r.Delete("/{id}", s.handleDeleteItem)
		})
	})

	return r
}
