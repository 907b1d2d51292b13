// Package settings holds the user configuration consumed by the ledger
// engine: the account registry, the type registry, currency and exchange
// information, default filters, and entry-prediction knobs. It is persisted
// as snidget.yaml.
package settings

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// OneWeek is the span used for trailing-week balances and date filters.
const OneWeek = 7 * 24 * time.Hour

// Account is one row of the account registry. Deleted accounts are hidden
// from reports but stay resolvable so historical records still decode.
// Currency is empty for accounts held in the default currency.
type Account struct {
	Key      string  `yaml:"key"`
	Name     string  `yaml:"name"`
	Deleted  bool    `yaml:"deleted,omitempty"`
	Currency string  `yaml:"currency,omitempty"`
	Rate     float64 `yaml:"rate,omitempty"` // multiplier to the default currency
}

// Type classifies transactions. Positive types (Income, Transfer, ...) add to
// balances; everything else is expense-like.
type Type struct {
	Name     string `yaml:"name"`
	Positive bool   `yaml:"positive,omitempty"`
}

// Filters is the default filter specification applied when a ledger is
// opened. An empty slot means no constraint from that dimension. MaxPrint
// caps how many trailing visible rows are rendered; zero or less means no cap.
type Filters struct {
	Dates      string `yaml:"dates,omitempty"`
	Accounts   string `yaml:"accounts,omitempty"`
	Columns    string `yaml:"columns,omitempty"`
	Types      string `yaml:"types,omitempty"`
	Recipients string `yaml:"recipients,omitempty"`
	Substring  string `yaml:"substring,omitempty"`
	Values     string `yaml:"values,omitempty"`
	UIDs       string `yaml:"uids,omitempty"`
	MaxPrint   int    `yaml:"max_print,omitempty"`
}

// Settings is the top-level snidget.yaml configuration.
type Settings struct {
	Ledger          string    `yaml:"ledger"`
	DefaultCurrency string    `yaml:"default_currency"`
	NotChar         string    `yaml:"not_character"`
	Allowance       float64   `yaml:"allowance"`
	TotalValues     bool      `yaml:"total_values"`
	PredictDest     bool      `yaml:"predict_destinations"`
	NumPredict      int       `yaml:"predictions"`
	Places          []string  `yaml:"places,omitempty"`
	Accounts        []Account `yaml:"accounts"`
	Types           []Type    `yaml:"types"`
	Filters         Filters   `yaml:"filters"`

	// Today is fixed when the settings are created so a whole invocation
	// agrees on what "this week" means. Tests assign it directly.
	Today time.Time `yaml:"-"`
}

// Load reads a snidget.yaml file from disk.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	s.Today = today()
	return &s, nil
}

// Save writes the settings to a YAML file.
func Save(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// Default returns the settings used for a fresh install.
func Default() *Settings {
	return &Settings{
		Ledger:          "expenses.txt",
		DefaultCurrency: "CAD",
		NotChar:         "#",
		Allowance:       100,
		PredictDest:     true,
		NumPredict:      6,
		Places:          []string{"Shoppers Drug Mart", "Metro", "Tim Horton's", "Starbucks", "7-11"},
		Accounts: []Account{
			{Key: "A0", Name: "Bank"},
			{Key: "A1", Name: "Credit"},
			{Key: "A2", Name: "Cash"},
		},
		Types: []Type{
			{Name: "Income", Positive: true},
			{Name: "Transfer", Positive: true},
			{Name: "Adjustment", Positive: true},
			{Name: "Bill"},
			{Name: "Food"},
			{Name: "School"},
			{Name: "Household"},
			{Name: "Extras"},
		},
		Filters: Filters{Dates: "W1", MaxPrint: 25},
		Today:   today(),
	}
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Settings) account(key string) *Account {
	for i := range s.Accounts {
		if s.Accounts[i].Key == key {
			return &s.Accounts[i]
		}
	}
	return nil
}

// Has reports whether an account key exists, deleted or not.
func (s *Settings) Has(key string) bool { return s.account(key) != nil }

// AccountName resolves a key to its display name.
func (s *Settings) AccountName(key string) (string, bool) {
	if a := s.account(key); a != nil {
		return a.Name, true
	}
	return "", false
}

// AccountKey resolves a display name to its key.
func (s *Settings) AccountKey(name string) (string, bool) {
	for _, a := range s.Accounts {
		if a.Name == name {
			return a.Key, true
		}
	}
	return "", false
}

// AccountKeys returns all account keys in registry order.
func (s *Settings) AccountKeys() []string {
	keys := make([]string, len(s.Accounts))
	for i, a := range s.Accounts {
		keys[i] = a.Key
	}
	return keys
}

// AccountNames returns all account names in registry order.
func (s *Settings) AccountNames() []string {
	names := make([]string, len(s.Accounts))
	for i, a := range s.Accounts {
		names[i] = a.Name
	}
	return names
}

// IsDeleted reports whether an account key is marked deleted.
func (s *Settings) IsDeleted(key string) bool {
	a := s.account(key)
	return a != nil && a.Deleted
}

// DeletedAccountKeys returns the keys of accounts marked deleted.
func (s *Settings) DeletedAccountKeys() []string {
	var keys []string
	for _, a := range s.Accounts {
		if a.Deleted {
			keys = append(keys, a.Key)
		}
	}
	return keys
}

// IsForeign reports whether an account is held in a non-default currency.
func (s *Settings) IsForeign(key string) bool {
	a := s.account(key)
	return a != nil && a.Currency != "" && a.Currency != s.DefaultCurrency
}

// ForeignAccountKeys returns the keys of foreign-currency accounts.
func (s *Settings) ForeignAccountKeys() []string {
	var keys []string
	for _, a := range s.Accounts {
		if s.IsForeign(a.Key) {
			keys = append(keys, a.Key)
		}
	}
	return keys
}

// ExchangeRate returns the multiplier converting an account's amounts to the
// default currency; 1 for non-foreign accounts or unset rates.
func (s *Settings) ExchangeRate(key string) decimal.Decimal {
	if a := s.account(key); a != nil && s.IsForeign(key) && a.Rate != 0 {
		return decimal.NewFromFloat(a.Rate)
	}
	return decimal.NewFromInt(1)
}

// TypeNames returns the type registry names in order.
func (s *Settings) TypeNames() []string {
	names := make([]string, len(s.Types))
	for i, t := range s.Types {
		names[i] = t.Name
	}
	return names
}

// IsPositiveType reports whether deltas of this type add to balances.
func (s *Settings) IsPositiveType(name string) bool {
	for _, t := range s.Types {
		if t.Name == name {
			return t.Positive
		}
	}
	return false
}

// ExpenseTypesSpec returns a comma-joined list of the expense-like types,
// suitable as a type filter value.
func (s *Settings) ExpenseTypesSpec() string {
	spec := ""
	for _, t := range s.Types {
		if t.Positive {
			continue
		}
		if spec != "" {
			spec += ","
		}
		spec += t.Name
	}
	return spec
}

// NotCharacter returns the negation marker for string and type filters.
func (s *Settings) NotCharacter() string { return s.NotChar }

// NumberToPredict returns how many suggestions entry prediction should offer.
func (s *Settings) NumberToPredict() int { return s.NumPredict }
