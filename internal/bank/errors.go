package bank

import "errors"

// Error values mirror the reasons the remote API reports, so both backend
// strategies surface the same failure taxonomy to the session layer.
var (
	ErrInvalidCredentials  = errors.New("incorrect email or password")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidPIN          = errors.New("invalid PIN")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidOTP          = errors.New("invalid OTP")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotFound            = errors.New("not found")
)
