package repository

import (
	"errors"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/joeldanieldsouza8/bankist/internal/model"
)

func account(owner string, pin int, values ...float64) *model.Account {
	a := &model.Account{Owner: owner, PIN: pin, Currency: "EUR", Locale: "pt-PT"}
	for _, v := range values {
		a.AppendMovement(decimal.NewFromFloat(v), time.Now())
	}
	return a
}

func newTestRepo(t *testing.T) *AccountRepository {
	t.Helper()
	repo, err := NewAccountRepository([]*model.Account{
		account("Jonas Schmedtmann", 1111, 200, 450, -400, 3000, -650, -130, 70, 1300),
		account("Jessica Davis", 2222, 5000, 3400, -150, -790, -3210, -1000, 8500, -30),
		account("Steven Thomas Williams", 3333, 10, 20),
	})
	if err != nil {
		t.Fatalf("NewAccountRepository() error = %v", err)
	}
	return repo
}

func TestDeriveUsername(t *testing.T) {
	tests := []struct {
		name  string
		owner string
		want  string
	}{
		{name: "two words", owner: "Jonas Schmedtmann", want: "js"},
		{name: "three words", owner: "Steven Thomas Williams", want: "stw"},
		{name: "uppercase input", owner: "SARAH SMITH", want: "ss"},
		{name: "single word", owner: "Madonna", want: "m"},
		{name: "extra whitespace", owner: "  Jessica   Davis ", want: "jd"},
		{name: "accented initials", owner: "Óscar Silva", want: "ós"},
		{name: "multibyte throughout", owner: "Åse Ødegård", want: "åø"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveUsername(tt.owner)
			if got != tt.want {
				t.Errorf("DeriveUsername(%q) = %q, want %q", tt.owner, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("DeriveUsername(%q) = %q is not valid UTF-8", tt.owner, got)
			}
		})
	}
}

func TestGetByUsername_AccentedOwner(t *testing.T) {
	repo, err := NewAccountRepository([]*model.Account{
		account("Óscar Silva", 1234, 100),
	})
	if err != nil {
		t.Fatalf("NewAccountRepository() error = %v", err)
	}

	a, err := repo.GetByUsername("ós")
	if err != nil {
		t.Fatalf("GetByUsername(ós) error = %v", err)
	}
	if a.Username != "ós" {
		t.Errorf("username = %q, want ós", a.Username)
	}
}

func TestNewAccountRepository_DuplicateUsername(t *testing.T) {
	_, err := NewAccountRepository([]*model.Account{
		account("Jonas Schmedtmann", 1111),
		account("Jessica Schmidt", 2222), // also "js"
	})
	if !errors.Is(err, model.ErrDuplicateUsername) {
		t.Errorf("NewAccountRepository() error = %v, want ErrDuplicateUsername", err)
	}
}

func TestNewAccountRepository_MisalignedDates(t *testing.T) {
	a := account("Jonas Schmedtmann", 1111, 200)
	a.MovementDates = nil

	if _, err := NewAccountRepository([]*model.Account{a}); err == nil {
		t.Error("NewAccountRepository() accepted misaligned movement dates")
	}
}

func TestGetByUsername(t *testing.T) {
	repo := newTestRepo(t)

	a, err := repo.GetByUsername("js")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if a.Owner != "Jonas Schmedtmann" {
		t.Errorf("owner = %q, want Jonas Schmedtmann", a.Owner)
	}

	if _, err := repo.GetByUsername("nobody"); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("GetByUsername(nobody) error = %v, want ErrAccountNotFound", err)
	}
}

func TestGetByUsername_ReturnsCopy(t *testing.T) {
	repo := newTestRepo(t)

	a, _ := repo.GetByUsername("js")
	a.AppendMovement(decimal.NewFromInt(999999), time.Now())

	fresh, _ := repo.GetByUsername("js")
	if len(fresh.Movements) != 8 {
		t.Errorf("mutating a returned account changed the directory: %d movements", len(fresh.Movements))
	}
}

func TestRemove(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Remove("js"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if _, err := repo.GetByUsername("js"); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("removed account still resolvable, error = %v", err)
	}
	if repo.Count() != 2 {
		t.Errorf("Count() = %d, want 2", repo.Count())
	}

	if err := repo.Remove("js"); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("second Remove() error = %v, want ErrAccountNotFound", err)
	}
}

func TestTransfer(t *testing.T) {
	repo := newTestRepo(t)

	sender, err := repo.Transfer("js", "jd", decimal.NewFromInt(200))
	if err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}

	// Sender got a -200 movement
	last := sender.Movements[len(sender.Movements)-1]
	if !last.Equal(decimal.NewFromInt(-200)) {
		t.Errorf("sender's new movement = %v, want -200", last)
	}
	if len(sender.Movements) != 9 {
		t.Errorf("sender has %d movements, want 9", len(sender.Movements))
	}
	if !sender.Consistent() {
		t.Error("sender movement/date logs misaligned after transfer")
	}

	// Receiver got a +200 movement
	receiver, _ := repo.GetByUsername("jd")
	last = receiver.Movements[len(receiver.Movements)-1]
	if !last.Equal(decimal.NewFromInt(200)) {
		t.Errorf("receiver's new movement = %v, want 200", last)
	}
	if len(receiver.Movements) != 9 {
		t.Errorf("receiver has %d movements, want 9", len(receiver.Movements))
	}
	if !receiver.Consistent() {
		t.Error("receiver movement/date logs misaligned after transfer")
	}
}

func TestTransfer_UpdatesBalances(t *testing.T) {
	repo, err := NewAccountRepository([]*model.Account{
		account("Alice Archer", 1111, 1000),
		account("Bob Brown", 2222, 500),
	})
	if err != nil {
		t.Fatalf("NewAccountRepository() error = %v", err)
	}

	sender, err := repo.Transfer("aa", "bb", decimal.NewFromInt(200))
	if err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}

	if got := sum(sender.Movements); !got.Equal(decimal.NewFromInt(800)) {
		t.Errorf("sender balance = %v, want 800", got)
	}
	receiver, _ := repo.GetByUsername("bb")
	if got := sum(receiver.Movements); !got.Equal(decimal.NewFromInt(700)) {
		t.Errorf("receiver balance = %v, want 700", got)
	}
}

func TestTransfer_Preconditions(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		to     string
		amount decimal.Decimal
	}{
		{name: "zero amount", from: "js", to: "jd", amount: decimal.Zero},
		{name: "negative amount", from: "js", to: "jd", amount: decimal.NewFromInt(-5)},
		{name: "unknown recipient", from: "js", to: "nobody", amount: decimal.NewFromInt(10)},
		{name: "insufficient funds", from: "stw", to: "jd", amount: decimal.NewFromInt(1000)},
		{name: "self transfer", from: "js", to: "js", amount: decimal.NewFromInt(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t)
			before, _ := repo.GetByUsername(tt.from)
			beforeTo, errTo := repo.GetByUsername(tt.to)

			_, err := repo.Transfer(tt.from, tt.to, tt.amount)
			if !errors.Is(err, model.ErrInvalidTransfer) {
				t.Fatalf("Transfer() error = %v, want ErrInvalidTransfer", err)
			}

			// Atomicity: neither side changed
			after, _ := repo.GetByUsername(tt.from)
			if len(after.Movements) != len(before.Movements) ||
				len(after.MovementDates) != len(before.MovementDates) {
				t.Error("failed transfer mutated the sender")
			}
			if errTo == nil && tt.to != tt.from {
				afterTo, _ := repo.GetByUsername(tt.to)
				if len(afterTo.Movements) != len(beforeTo.Movements) {
					t.Error("failed transfer mutated the receiver")
				}
			}
		})
	}
}

func TestGrantLoan(t *testing.T) {
	repo := newTestRepo(t)

	// Loan of 1000 needs a movement >= 100; Jonas has 3000
	a, err := repo.GrantLoan("js", decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("GrantLoan() error = %v", err)
	}
	if len(a.Movements) != 9 {
		t.Errorf("got %d movements, want 9", len(a.Movements))
	}
	last := a.Movements[len(a.Movements)-1]
	if !last.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("loan movement = %v, want 1000", last)
	}
	if !a.Consistent() {
		t.Error("movement/date logs misaligned after loan")
	}
}

func TestGrantLoan_Rejected(t *testing.T) {
	repo := newTestRepo(t)

	tests := []struct {
		name     string
		username string
		amount   decimal.Decimal
	}{
		// Steven's movements are [10, 20]: nothing covers 100
		{name: "no collateral", username: "stw", amount: decimal.NewFromInt(1000)},
		{name: "zero amount", username: "js", amount: decimal.Zero},
		{name: "negative amount", username: "js", amount: decimal.NewFromInt(-100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, _ := repo.GetByUsername(tt.username)

			_, err := repo.GrantLoan(tt.username, tt.amount)
			if !errors.Is(err, model.ErrLoanRejected) {
				t.Fatalf("GrantLoan() error = %v, want ErrLoanRejected", err)
			}

			after, _ := repo.GetByUsername(tt.username)
			if len(after.Movements) != len(before.Movements) {
				t.Error("rejected loan mutated the account")
			}
		})
	}
}

func TestGrantLoan_CollateralBoundary(t *testing.T) {
	repo, err := NewAccountRepository([]*model.Account{
		account("Alice Archer", 1111, 100), // exactly 10% of 1000
	})
	if err != nil {
		t.Fatalf("NewAccountRepository() error = %v", err)
	}

	if _, err := repo.GrantLoan("aa", decimal.NewFromInt(1000)); err != nil {
		t.Errorf("GrantLoan() at exact 10%% boundary error = %v, want approval", err)
	}
}

func TestList_InsertionOrder(t *testing.T) {
	repo := newTestRepo(t)

	accounts := repo.List()
	if len(accounts) != 3 {
		t.Fatalf("List() returned %d accounts, want 3", len(accounts))
	}
	want := []string{"js", "jd", "stw"}
	for i, username := range want {
		if accounts[i].Username != username {
			t.Errorf("List()[%d].Username = %q, want %q", i, accounts[i].Username, username)
		}
	}
}

func sum(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m)
	}
	return total
}
