package httpapi

import (
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/ncnews/internal/errs"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	writeOK(w, r, usersEnvelope{Users: out})
}

// getUser answers 400 for unknown usernames; a username is input, not a resource id.
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.ByUsername(r.Context(), chi.URLParam(r, paramUsername))
	if errors.Is(err, errs.ErrNotFound) {
		badRequest(w, r)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, r, userEnvelope{User: toUserResponse(u)})
}
