package server

import (
	"errors"
	"net/http"
	"strings"

	"securebank/internal/bank"
	"securebank/internal/models"
)

type authedHandler func(http.ResponseWriter, *http.Request, models.User)

// authed resolves the bearer token to a user before invoking h. Any failure
// is a 401; there is no other signal for an invalid session.
func (s *Server) authed(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, errUnauthorized)
			return
		}
		email, err := s.Tokens.Verify(token)
		if err != nil {
			writeError(w, errUnauthorized)
			return
		}
		user, err := s.Bank.UserByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, bank.ErrNotFound) {
				writeError(w, errUnauthorized)
				return
			}
			writeError(w, err)
			return
		}
		h(w, r, user)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
