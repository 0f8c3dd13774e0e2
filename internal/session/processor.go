// Package session implements the action layer of the bank: login, transfer,
// loan, closure and the sort toggle. Every action validates all of its
// preconditions before touching the ledger and either commits fully or
// returns a typed error with no state change.
package session

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/joeldanieldsouza8/bankist/internal/ledger"
	"github.com/joeldanieldsouza8/bankist/internal/model"
	"github.com/joeldanieldsouza8/bankist/internal/repository"
)

// Processor dispatches user actions against the account directory on
// behalf of authenticated sessions
type Processor struct {
	repo     *repository.AccountRepository
	sessions *Store
}

// NewProcessor creates a new Processor
func NewProcessor(repo *repository.AccountRepository, sessions *Store) *Processor {
	return &Processor{repo: repo, sessions: sessions}
}

// LoginResult is returned on successful authentication
type LoginResult struct {
	Greeting string            `json:"greeting"`
	At       time.Time         `json:"at"`
	Account  model.AccountView `json:"account"`
}

// Login authenticates a username/PIN pair and opens a session.
// The PIN check is exact numeric equality against the stored PIN; on any
// mismatch, including an unknown username, it fails with
// ErrAuthenticationFailed and no session is created.
func (p *Processor) Login(req model.LoginRequest) (*LoginResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrAuthenticationFailed, err)
	}

	account, err := p.repo.GetByUsername(req.Username)
	if err != nil {
		return nil, model.ErrAuthenticationFailed
	}
	if account.PIN != req.PIN {
		return nil, model.ErrAuthenticationFailed
	}

	now := time.Now()
	state := State{Username: account.Username, LoggedInAt: now}
	p.sessions.Put(state)

	return &LoginResult{
		Greeting: fmt.Sprintf("Welcome back, %s", account.FirstName()),
		At:       now,
		Account:  buildView(account, state.Sorted, now),
	}, nil
}

// Logout ends the session, if any. Always succeeds.
func (p *Processor) Logout(username string) {
	p.sessions.Delete(username)
}

// View returns the current view-model for the session's account
func (p *Processor) View(username string) (*model.AccountView, error) {
	state, err := p.requireSession(username)
	if err != nil {
		return nil, err
	}

	account, err := p.repo.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	view := buildView(account, state.Sorted, time.Now())
	return &view, nil
}

// Transfer moves money from the session's account to another account.
// The transfer is atomic: if any precondition fails, both movement logs
// are left exactly as they were.
func (p *Processor) Transfer(username string, req model.TransferRequest) (*model.TransferResponse, error) {
	state, err := p.requireSession(username)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidTransfer, err)
	}

	sender, err := p.repo.Transfer(username, req.To, req.Amount)
	if err != nil {
		return nil, err
	}

	return &model.TransferResponse{
		TransactionID: uuid.New(),
		Account:       buildView(sender, state.Sorted, time.Now()),
	}, nil
}

// RequestLoan asks the bank for a loan. The requested amount is floored to
// an integer before the approval rule runs: the loan is granted only if
// some prior movement covers at least 10% of it. A granted loan lands as a
// single positive movement.
func (p *Processor) RequestLoan(username string, req model.LoanRequest) (*model.TransferResponse, error) {
	state, err := p.requireSession(username)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrLoanRejected, err)
	}

	account, err := p.repo.GrantLoan(username, req.Amount.Floor())
	if err != nil {
		return nil, err
	}

	return &model.TransferResponse{
		TransactionID: uuid.New(),
		Account:       buildView(account, state.Sorted, time.Now()),
	}, nil
}

// CloseAccount permanently removes the session's account. The username and
// PIN must be re-entered and must match the authenticated account exactly;
// otherwise the action fails with ErrAuthenticationFailed and the session
// stays active. On success the session is ended.
func (p *Processor) CloseAccount(username string, req model.CloseRequest) error {
	if _, err := p.requireSession(username); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", model.ErrAuthenticationFailed, err)
	}

	account, err := p.repo.GetByUsername(username)
	if err != nil {
		return err
	}
	if req.Username != account.Username || req.PIN != account.PIN {
		return model.ErrAuthenticationFailed
	}

	if err := p.repo.Remove(username); err != nil {
		return err
	}
	p.sessions.Delete(username)
	return nil
}

// ToggleSort flips the session's movement ordering between chronological
// and ascending-by-amount. View state only: the ledger is never touched.
func (p *Processor) ToggleSort(username string) (*model.AccountView, error) {
	state, err := p.requireSession(username)
	if err != nil {
		return nil, err
	}

	state.Sorted = !state.Sorted
	p.sessions.Put(state)

	account, err := p.repo.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	view := buildView(account, state.Sorted, time.Now())
	return &view, nil
}

// requireSession resolves the live session for a username
func (p *Processor) requireSession(username string) (State, error) {
	state, ok := p.sessions.Get(username)
	if !ok {
		return State{}, model.ErrNotAuthenticated
	}
	return state, nil
}

// buildView derives the complete view-model for an account: balance and
// summary figures plus the movement rows in display order
func buildView(account *model.Account, sorted bool, asOf time.Time) model.AccountView {
	rows := make([]model.MovementView, 0, len(account.Movements))
	for i, amount := range account.Movements {
		row := model.MovementView{
			Index:  i + 1,
			Type:   model.MovementTypeDeposit,
			Amount: amount,
			Date:   account.MovementDates[i],
		}
		if amount.IsNegative() || amount.IsZero() {
			row.Type = model.MovementTypeWithdrawal
		}
		rows = append(rows, row)
	}

	if sorted {
		// Ascending by amount; each row keeps its own date and
		// chronological index
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Amount.Cmp(rows[j].Amount) < 0
		})
	} else {
		// Newest first
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}

	return model.AccountView{
		OwnerFirstName:     account.FirstName(),
		Username:           account.Username,
		Currency:           account.Currency,
		Locale:             account.Locale,
		Balance:            ledger.Balance(account.Movements),
		TotalIncome:        ledger.TotalIncome(account.Movements),
		TotalExpense:       ledger.TotalExpense(account.Movements),
		QualifyingInterest: ledger.QualifyingInterest(account.Movements, account.InterestRate),
		Movements:          rows,
		Sorted:             sorted,
		AsOf:               asOf,
	}
}
