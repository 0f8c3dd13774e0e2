package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType classifies a single movement by its sign
type MovementType string

const (
	MovementTypeDeposit    MovementType = "deposit"
	MovementTypeWithdrawal MovementType = "withdrawal"
)

// Account represents a bank account with its full movement history.
// Movements and MovementDates are parallel slices: entry i of MovementDates
// is the timestamp of movement i. Every mutation must keep them the same
// length, which is why all appends go through AppendMovement.
type Account struct {
	ID            uuid.UUID         `json:"id"`
	Owner         string            `json:"owner"`
	Username      string            `json:"username"`
	Movements     []decimal.Decimal `json:"movements"`
	MovementDates []time.Time       `json:"movements_dates"`
	InterestRate  decimal.Decimal   `json:"interest_rate"`
	PIN           int               `json:"-"` // Never serialize the PIN
	Currency      string            `json:"currency"`
	Locale        string            `json:"locale"`
}

// FirstName returns the first token of the owner's full name,
// used for the post-login greeting
func (a *Account) FirstName() string {
	fields := strings.Fields(a.Owner)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// AppendMovement records a signed amount and its timestamp.
// Positive amounts are deposits, negative amounts are withdrawals.
func (a *Account) AppendMovement(amount decimal.Decimal, at time.Time) {
	a.Movements = append(a.Movements, amount)
	a.MovementDates = append(a.MovementDates, at)
}

// Consistent returns true if the movement and date logs are aligned
func (a *Account) Consistent() bool {
	return len(a.Movements) == len(a.MovementDates)
}

// Clone returns a deep copy of the account so callers can't reach
// back into repository-owned slices
func (a *Account) Clone() *Account {
	cp := *a
	cp.Movements = make([]decimal.Decimal, len(a.Movements))
	copy(cp.Movements, a.Movements)
	cp.MovementDates = make([]time.Time, len(a.MovementDates))
	copy(cp.MovementDates, a.MovementDates)
	return &cp
}

// MovementView is a single rendered row of an account's history
type MovementView struct {
	Index     int             `json:"index"` // 1-based chronological position
	Type      MovementType    `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted,omitempty"`
	Date      time.Time       `json:"date"`
	DateLabel string          `json:"date_label,omitempty"`
}

// AccountView is the view-model returned to the presentation layer after
// every successful action. Movements are ordered newest-first unless Sorted
// is set, in which case they are ascending by amount.
type AccountView struct {
	OwnerFirstName     string          `json:"owner_first_name"`
	Username           string          `json:"username"`
	Currency           string          `json:"currency"`
	Locale             string          `json:"locale"`
	Balance            decimal.Decimal `json:"balance"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpense       decimal.Decimal `json:"total_expense"`
	QualifyingInterest decimal.Decimal `json:"qualifying_interest"`
	Movements          []MovementView  `json:"movements"`
	Sorted             bool            `json:"sorted"`
	AsOf               time.Time       `json:"as_of"`
}

// TransferResponse is returned after a successful transfer or loan
type TransferResponse struct {
	TransactionID uuid.UUID   `json:"transaction_id"`
	Account       AccountView `json:"account"`
}
