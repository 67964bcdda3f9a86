package server

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"securebank/internal/bank"
	"securebank/internal/models"
)

func (s *Server) handleProfile(w http.ResponseWriter, _ *http.Request, user models.User) {
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, user models.User) {
	var update bank.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, errBadRequest)
		return
	}
	updated, err := s.Bank.UpdateProfile(r.Context(), user.ID, update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request, user models.User) {
	balance, err := s.Bank.Balance(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"balance": balance})
}

type updateBalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (s *Server) handleUpdateBalance(w http.ResponseWriter, r *http.Request, user models.User) {
	var req updateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	balance, err := s.Bank.UpdateBalance(r.Context(), user.ID, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"balance": balance, "message": "Balance updated successfully"})
}

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request, user models.User) {
	contacts, err := s.Bank.ContactList(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}
