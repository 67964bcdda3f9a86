package tui

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Step guards for the money flows. Each returns "" when the input may
// proceed, or the message to show. Keeping them pure keeps the key handlers
// thin and the rules testable.

func recipientReason(name, account string) string {
	if strings.TrimSpace(name) == "" {
		return "recipient name is required"
	}
	if strings.TrimSpace(account) == "" {
		return "account number is required"
	}
	return ""
}

func amountReason(input string, balance decimal.Decimal) string {
	amount, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return "enter a valid amount"
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return "amount must be greater than zero"
	}
	if amount.GreaterThan(balance) {
		return "insufficient balance"
	}
	return ""
}

// requestAmountReason is the incoming-money variant: no balance ceiling.
func requestAmountReason(input string) string {
	amount, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return "enter a valid amount"
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return "amount must be greater than zero"
	}
	return ""
}

func pinReason(pin string) string {
	if len(pin) != 4 || !allDigits(pin) {
		return "PIN must be exactly 4 digits"
	}
	return ""
}

func otpReason(otp string) string {
	if len(otp) != 6 || !allDigits(otp) {
		return "OTP must be exactly 6 digits"
	}
	return ""
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
