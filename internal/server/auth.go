package server

import (
	"encoding/json"
	"net/http"

	"securebank/internal/bank"
	"securebank/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	user, err := s.Bank.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	s.writeCredentials(w, user)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req bank.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	user, err := s.Bank.CreateUser(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	s.writeCredentials(w, user)
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := s.Bank.VerifyOTP(req.OTP); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "OTP verified successfully", "verified": true})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, _ *http.Request, user models.User) {
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) writeCredentials(w http.ResponseWriter, user models.User) {
	token, err := s.Tokens.Generate(user.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{User: user, AccessToken: token, TokenType: "bearer"})
}
