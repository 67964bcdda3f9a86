// Package server exposes the banking core over the HTTP+JSON surface the
// remote backend strategy consumes. bankd serves it locally so the client's
// remote mode has something real to talk to in development and tests.
package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"securebank/internal/auth"
	"securebank/internal/bank"
)

// Server wires the banking core behind HTTP handlers.
type Server struct {
	Bank   *bank.Service
	Tokens *auth.TokenManager
}

// NewRouter builds the /api route table. Everything except login, signup,
// verify-otp, and the loan calculator requires a bearer token.
func (s *Server) NewRouter() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-otp", s.handleVerifyOTP).Methods(http.MethodPost)
	api.HandleFunc("/loans/calculator", s.handleLoanCalculator).Methods(http.MethodGet)

	api.HandleFunc("/auth/me", s.authed(s.handleCurrentUser)).Methods(http.MethodGet)
	api.HandleFunc("/user/profile", s.authed(s.handleProfile)).Methods(http.MethodGet)
	api.HandleFunc("/user/profile", s.authed(s.handleUpdateProfile)).Methods(http.MethodPut)
	api.HandleFunc("/user/balance", s.authed(s.handleBalance)).Methods(http.MethodGet)
	api.HandleFunc("/user/update-balance", s.authed(s.handleUpdateBalance)).Methods(http.MethodPost)
	api.HandleFunc("/user/contacts", s.authed(s.handleContacts)).Methods(http.MethodGet)

	api.HandleFunc("/transactions/send-money", s.authed(s.handleSendMoney)).Methods(http.MethodPost)
	api.HandleFunc("/transactions/request-money", s.authed(s.handleRequestMoney)).Methods(http.MethodPost)
	api.HandleFunc("/transactions/qr-payment", s.authed(s.handleQRPayment)).Methods(http.MethodPost)
	api.HandleFunc("/transactions/history", s.authed(s.handleHistory)).Methods(http.MethodGet)
	api.HandleFunc("/transactions/recent", s.authed(s.handleRecent)).Methods(http.MethodGet)

	api.HandleFunc("/loans", s.authed(s.handleLoans)).Methods(http.MethodGet)
	api.HandleFunc("/loans/apply", s.authed(s.handleApplyLoan)).Methods(http.MethodPost)
	api.HandleFunc("/loans/pay-emi/{id}", s.authed(s.handlePayEMI)).Methods(http.MethodPost)

	api.HandleFunc("/investments", s.authed(s.handleInvestments)).Methods(http.MethodGet)
	api.HandleFunc("/investments", s.authed(s.handleCreateInvestment)).Methods(http.MethodPost)
	api.HandleFunc("/investments/portfolio", s.authed(s.handlePortfolio)).Methods(http.MethodGet)
	api.HandleFunc("/investments/{id}", s.authed(s.handleSellInvestment)).Methods(http.MethodDelete)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return r
}
