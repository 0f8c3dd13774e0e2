// Package bootstrap builds the account directory from seed data.
// The bank has no persistence: every process starts from the seed set,
// either the built-in demo accounts or a JSON file.
package bootstrap

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joeldanieldsouza8/bankist/internal/model"
	"github.com/joeldanieldsouza8/bankist/internal/repository"
)

const (
	defaultCurrency = "EUR"
	defaultLocale   = "pt-PT"
)

// SeedAccount is one account record in the seed file
type SeedAccount struct {
	Owner          string      `json:"owner"`
	Movements      []float64   `json:"movements"`
	InterestRate   float64     `json:"interestRate"` // percent
	PIN            int         `json:"pin"`
	MovementsDates []time.Time `json:"movementsDates,omitempty"`
	Currency       string      `json:"currency,omitempty"`
	Locale         string      `json:"locale,omitempty"`
}

// LoadSeedFile reads a seed account set from a JSON file
func LoadSeedFile(path string) ([]SeedAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seeds []SeedAccount
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return seeds, nil
}

// BuildRepository turns seed records into the live account directory.
// Records without currency or locale get the bank defaults, and records
// without timestamps get one synthetic timestamp per movement, one day
// apart, ending yesterday, so relative date labels have something to show.
func BuildRepository(seeds []SeedAccount) (*repository.AccountRepository, error) {
	accounts := make([]*model.Account, 0, len(seeds))
	for _, seed := range seeds {
		account, err := buildAccount(seed)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return repository.NewAccountRepository(accounts)
}

func buildAccount(seed SeedAccount) (*model.Account, error) {
	if seed.Owner == "" {
		return nil, fmt.Errorf("seed account without owner")
	}
	if len(seed.MovementsDates) > 0 && len(seed.MovementsDates) != len(seed.Movements) {
		return nil, fmt.Errorf("seed account %q: %d movements but %d dates",
			seed.Owner, len(seed.Movements), len(seed.MovementsDates))
	}

	account := &model.Account{
		ID:           uuid.New(),
		Owner:        seed.Owner,
		InterestRate: decimal.NewFromFloat(seed.InterestRate),
		PIN:          seed.PIN,
		Currency:     seed.Currency,
		Locale:       seed.Locale,
	}
	if account.Currency == "" {
		account.Currency = defaultCurrency
	}
	if account.Locale == "" {
		account.Locale = defaultLocale
	}

	dates := seed.MovementsDates
	if len(dates) == 0 {
		dates = syntheticDates(len(seed.Movements))
	}
	for i, m := range seed.Movements {
		account.AppendMovement(decimal.NewFromFloat(m), dates[i])
	}

	return account, nil
}

// syntheticDates spaces n timestamps one day apart, newest yesterday
func syntheticDates(n int) []time.Time {
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = time.Now().AddDate(0, 0, -(n - i))
	}
	return dates
}

// DefaultSeed returns the built-in demo account set
func DefaultSeed() []SeedAccount {
	return []SeedAccount{
		{
			Owner:        "Jonas Schmedtmann",
			Movements:    []float64{200, 450, -400, 3000, -650, -130, 70, 1300},
			InterestRate: 1.2,
			PIN:          1111,
			MovementsDates: []time.Time{
				mustParse("2019-11-18T21:31:17.178Z"),
				mustParse("2019-12-23T07:42:02.383Z"),
				mustParse("2020-01-28T09:15:04.904Z"),
				mustParse("2020-04-01T10:17:24.185Z"),
				mustParse("2020-05-08T14:11:59.604Z"),
				mustParse("2020-05-27T17:01:17.194Z"),
				mustParse("2020-07-11T23:36:17.929Z"),
				mustParse("2020-07-12T10:51:36.790Z"),
			},
			Currency: "EUR",
			Locale:   "pt-PT",
		},
		{
			Owner:        "Jessica Davis",
			Movements:    []float64{5000, 3400, -150, -790, -3210, -1000, 8500, -30},
			InterestRate: 1.5,
			PIN:          2222,
			MovementsDates: []time.Time{
				mustParse("2019-11-01T13:15:33.035Z"),
				mustParse("2019-11-30T09:48:16.867Z"),
				mustParse("2019-12-25T06:04:23.907Z"),
				mustParse("2020-01-25T14:18:46.235Z"),
				mustParse("2020-02-05T16:33:06.386Z"),
				mustParse("2020-04-10T14:43:26.374Z"),
				mustParse("2020-06-25T18:49:59.371Z"),
				mustParse("2020-07-26T12:01:20.894Z"),
			},
			Currency: "USD",
			Locale:   "en-US",
		},
		{
			Owner:        "Steven Thomas Williams",
			Movements:    []float64{200, -200, 340, -300, -20, 50, 400, -460},
			InterestRate: 0.7,
			PIN:          3333,
		},
		{
			Owner:        "Sarah Smith",
			Movements:    []float64{430, 1000, 700, 50, 90},
			InterestRate: 1,
			PIN:          4444,
		},
	}
}

func mustParse(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
