package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"securebank/internal/bank"
	"securebank/internal/database/repository"
	"securebank/internal/models"
)

func (s *Server) handleSendMoney(w http.ResponseWriter, r *http.Request, user models.User) {
	var req bank.SendMoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	receipt, err := s.Bank.SendMoney(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) handleRequestMoney(w http.ResponseWriter, r *http.Request, user models.User) {
	var req bank.RequestMoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	pr, err := s.Bank.RequestMoney(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pr)
}

func (s *Server) handleQRPayment(w http.ResponseWriter, r *http.Request, user models.User) {
	var req bank.QRPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	receipt, err := s.Bank.QRPayment(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, user models.User) {
	q := r.URL.Query()
	filters := repository.TransactionFilters{
		Type:     q.Get("type"),
		Category: q.Get("category"),
	}
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			filters.Limit = n
		}
	}
	txs, err := s.Bank.History(r.Context(), user.ID, filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeTransactions(w, txs)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request, user models.User) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	txs, err := s.Bank.Recent(r.Context(), user.ID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeTransactions(w, txs)
}

func writeTransactions(w http.ResponseWriter, txs []models.Transaction) {
	if txs == nil {
		txs = []models.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}
