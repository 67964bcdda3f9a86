package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"securebank/internal/bank"
	"securebank/internal/models"
)

func (s *Server) handleInvestments(w http.ResponseWriter, r *http.Request, user models.User) {
	investments, err := s.Bank.ListInvestments(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if investments == nil {
		investments = []models.Investment{}
	}
	writeJSON(w, http.StatusOK, investments)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request, user models.User) {
	summary, err := s.Bank.PortfolioSummary(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request, user models.User) {
	var req bank.InvestmentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	investment, err := s.Bank.CreateInvestment(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, investment)
}

func (s *Server) handleSellInvestment(w http.ResponseWriter, r *http.Request, user models.User) {
	id := mux.Vars(r)["id"]
	receipt, err := s.Bank.SellInvestment(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}
