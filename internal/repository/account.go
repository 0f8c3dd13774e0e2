package repository

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/joeldanieldsouza8/bankist/internal/model"
)

// AccountRepository is the in-memory account directory. All state lives in
// process memory and every operation runs inside a single critical section,
// so cross-account actions like transfers are atomic: they either fully
// apply to both parties or leave the directory untouched.
type AccountRepository struct {
	mu         sync.Mutex
	byUsername map[string]*model.Account
	order      []string // usernames in insertion order
}

// DeriveUsername builds the login username from an owner's display name:
// the lowercase first letter of each word ("Steven Thomas Williams" -> "stw")
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(strings.ToLower(owner)) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}

// NewAccountRepository builds the directory from a finalized account set.
// Usernames are derived here, once, and a collision between two owners is a
// construction error rather than a silent first-match at lookup time.
func NewAccountRepository(accounts []*model.Account) (*AccountRepository, error) {
	r := &AccountRepository{
		byUsername: make(map[string]*model.Account, len(accounts)),
	}

	for _, account := range accounts {
		if !account.Consistent() {
			return nil, fmt.Errorf("account %q: %d movements but %d dates",
				account.Owner, len(account.Movements), len(account.MovementDates))
		}

		a := account.Clone()
		a.Username = DeriveUsername(a.Owner)
		if _, exists := r.byUsername[a.Username]; exists {
			return nil, fmt.Errorf("%w: %q", model.ErrDuplicateUsername, a.Username)
		}

		r.byUsername[a.Username] = a
		r.order = append(r.order, a.Username)
	}

	return r, nil
}

// GetByUsername looks up an account by its derived username.
// The returned account is a copy; mutating it does not touch the directory.
func (r *AccountRepository) GetByUsername(username string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byUsername[username]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return a.Clone(), nil
}

// List returns copies of all accounts in insertion order
func (r *AccountRepository) List() []*model.Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Account, 0, len(r.order))
	for _, username := range r.order {
		out = append(out, r.byUsername[username].Clone())
	}
	return out
}

// Count returns the number of accounts currently in the directory
func (r *AccountRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byUsername)
}

// Remove permanently deletes the account with the given username.
// There is no undo: the movement history goes with it.
func (r *AccountRepository) Remove(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[username]; !ok {
		return model.ErrAccountNotFound
	}
	delete(r.byUsername, username)
	for i, u := range r.order {
		if u == username {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Transfer moves amount from one account to another. Preconditions are
// checked in order inside the critical section: positive amount, resolvable
// receiver, sufficient sender balance, and no self-transfer. Any failure
// returns ErrInvalidTransfer with nothing mutated. On success the sender
// gets a -amount movement and the receiver a +amount movement, each with an
// independently captured timestamp. Returns a copy of the updated sender.
func (r *AccountRepository) Transfer(fromUsername, toUsername string, amount decimal.Decimal) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sender, ok := r.byUsername[fromUsername]
	if !ok {
		return nil, model.ErrAccountNotFound
	}

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", model.ErrInvalidTransfer)
	}
	receiver, ok := r.byUsername[toUsername]
	if !ok {
		return nil, fmt.Errorf("%w: unknown recipient %q", model.ErrInvalidTransfer, toUsername)
	}
	if balance(sender.Movements).Cmp(amount) < 0 {
		return nil, fmt.Errorf("%w: insufficient funds", model.ErrInvalidTransfer)
	}
	if receiver.Username == sender.Username {
		return nil, fmt.Errorf("%w: cannot transfer to own account", model.ErrInvalidTransfer)
	}

	sender.AppendMovement(amount.Neg(), time.Now())
	receiver.AppendMovement(amount, time.Now())

	return sender.Clone(), nil
}

// GrantLoan deposits a loan if the approval heuristic holds: the amount is
// positive and some existing movement covers at least 10% of it. The
// heuristic is evaluated against the live movement log inside the critical
// section so approval and deposit cannot interleave with other actions.
// Callers are expected to floor the requested amount first.
func (r *AccountRepository) GrantLoan(username string, amount decimal.Decimal) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byUsername[username]
	if !ok {
		return nil, model.ErrAccountNotFound
	}

	if !amount.IsPositive() || !hasCollateral(account.Movements, amount) {
		return nil, fmt.Errorf("%w: no movement covers 10%% of %s", model.ErrLoanRejected, amount)
	}

	account.AppendMovement(amount, time.Now())
	return account.Clone(), nil
}

// balance is the in-lock sum; the exported derivation lives in the ledger
// package, but Transfer needs the figure without re-locking
func balance(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m)
	}
	return total
}

// hasCollateral reports whether any single movement is at least 10% of the
// requested loan amount
func hasCollateral(movements []decimal.Decimal, amount decimal.Decimal) bool {
	threshold := amount.Mul(decimal.NewFromFloat(0.1))
	for _, m := range movements {
		if m.Cmp(threshold) >= 0 {
			return true
		}
	}
	return false
}
