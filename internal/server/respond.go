package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"securebank/internal/bank"
)

// writeJSON encodes payload with the given status.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("server: encode payload: %v", err)
	}
}

// detail is the error envelope the client decodes.
type detail struct {
	Detail string `json:"detail"`
}

// writeError maps banking errors onto HTTP statuses with a detail envelope.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, bank.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, errUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, bank.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, bank.ErrEmailTaken),
		errors.Is(err, bank.ErrInvalidPIN),
		errors.Is(err, bank.ErrInvalidAmount),
		errors.Is(err, bank.ErrInvalidOTP),
		errors.Is(err, bank.ErrInsufficientBalance),
		errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("server: internal error: %v", err)
		msg = "internal server error"
	}
	writeJSON(w, status, detail{Detail: msg})
}

var (
	errUnauthorized = errors.New("could not validate credentials")
	errBadRequest   = errors.New("invalid request body")
)
