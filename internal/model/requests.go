package model

import "github.com/shopspring/decimal"

// LoginRequest is the payload for opening a session
type LoginRequest struct {
	Username string `json:"username"`
	PIN      int    `json:"pin"`
}

// Validate checks if the login request has required fields
func (r LoginRequest) Validate() error {
	if r.Username == "" {
		return ErrUsernameRequired
	}
	if r.PIN == 0 {
		return ErrPINRequired
	}
	return nil
}

// TransferRequest is the payload for moving money to another account
type TransferRequest struct {
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Validate checks if the transfer request is well formed.
// Balance and recipient checks happen later, against the ledger.
func (r TransferRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if r.To == "" {
		return ErrRecipientRequired
	}
	return nil
}

// LoanRequest is the payload for requesting a loan
type LoanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Validate checks if the loan request is well formed.
// The approval heuristic is applied after flooring, by the session layer.
func (r LoanRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// CloseRequest is the payload for closing the authenticated account.
// Username and PIN must be re-entered and must match the session account.
type CloseRequest struct {
	Username string `json:"username"`
	PIN      int    `json:"pin"`
}

// Validate checks if the close request has required fields
func (r CloseRequest) Validate() error {
	if r.Username == "" {
		return ErrUsernameRequired
	}
	if r.PIN == 0 {
		return ErrPINRequired
	}
	return nil
}
