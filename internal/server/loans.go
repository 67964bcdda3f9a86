package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"securebank/internal/bank"
	"securebank/internal/models"
)

func (s *Server) handleLoans(w http.ResponseWriter, r *http.Request, user models.User) {
	loans, err := s.Bank.ListLoans(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if loans == nil {
		loans = []models.Loan{}
	}
	writeJSON(w, http.StatusOK, loans)
}

func (s *Server) handleApplyLoan(w http.ResponseWriter, r *http.Request, user models.User) {
	var req bank.LoanApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	receipt, err := s.Bank.ApplyLoan(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) handlePayEMI(w http.ResponseWriter, r *http.Request, user models.User) {
	loanID := mux.Vars(r)["id"]
	receipt, err := s.Bank.PayEMI(r.Context(), user.ID, loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) handleLoanCalculator(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := decimal.NewFromString(q.Get("loan_amount"))
	if err != nil {
		writeError(w, errBadRequest)
		return
	}
	rate, err := decimal.NewFromString(q.Get("interest_rate"))
	if err != nil {
		writeError(w, errBadRequest)
		return
	}
	months, err := strconv.Atoi(q.Get("tenure_months"))
	if err != nil || months <= 0 {
		writeError(w, errBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, bank.CalculateEMI(amount, rate, months))
}
