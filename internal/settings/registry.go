package settings

import "fmt"

// Registry editing, used by the config command. Account keys are never
// reused: deletion only hides an account, so historical records keep
// resolving.

// NewAccountKey returns the next unused "A<n>" key.
func (s *Settings) NewAccountKey() string {
	for n := 0; ; n++ {
		key := fmt.Sprintf("A%d", n)
		if !s.Has(key) {
			return key
		}
	}
}

// AddAccount registers a new account in the default currency and returns its
// key.
func (s *Settings) AddAccount(name string) (string, error) {
	if _, ok := s.AccountKey(name); ok {
		return "", fmt.Errorf("account %q already exists", name)
	}
	key := s.NewAccountKey()
	s.Accounts = append(s.Accounts, Account{Key: key, Name: name})
	return key, nil
}

// AddForeignAccount registers a new account held in another currency.
func (s *Settings) AddForeignAccount(name, currency string, rate float64) (string, error) {
	key, err := s.AddAccount(name)
	if err != nil {
		return "", err
	}
	a := s.account(key)
	a.Currency = currency
	a.Rate = rate
	return key, nil
}

// DeleteAccount marks an account deleted by name. The key stays resolvable.
func (s *Settings) DeleteAccount(name string) error {
	key, ok := s.AccountKey(name)
	if !ok {
		return fmt.Errorf("account %q does not exist", name)
	}
	s.account(key).Deleted = true
	return nil
}

// UndeleteAccount clears the deleted mark on an account.
func (s *Settings) UndeleteAccount(name string) error {
	for i := range s.Accounts {
		if s.Accounts[i].Name == name && s.Accounts[i].Deleted {
			s.Accounts[i].Deleted = false
			return nil
		}
	}
	return fmt.Errorf("no deleted account %q", name)
}

// RenameAccount changes an account's display name, keeping its key.
func (s *Settings) RenameAccount(oldName, newName string) error {
	if _, ok := s.AccountKey(newName); ok {
		return fmt.Errorf("account %q already exists", newName)
	}
	key, ok := s.AccountKey(oldName)
	if !ok {
		return fmt.Errorf("account %q does not exist", oldName)
	}
	s.account(key).Name = newName
	return nil
}

// SetExchangeRate updates the rate on every account held in the given
// currency and returns how many accounts changed.
func (s *Settings) SetExchangeRate(currency string, rate float64) int {
	updated := 0
	for i := range s.Accounts {
		if s.Accounts[i].Currency == currency {
			s.Accounts[i].Rate = rate
			updated++
		}
	}
	return updated
}

// AddType appends a type to the registry.
func (s *Settings) AddType(name string, positive bool) error {
	for _, t := range s.Types {
		if t.Name == name {
			return fmt.Errorf("type %q already exists", name)
		}
	}
	s.Types = append(s.Types, Type{Name: name, Positive: positive})
	return nil
}

// DeleteType removes an expense-like type. Positive types are load-bearing
// for balance math and cannot be removed.
func (s *Settings) DeleteType(name string) error {
	for i, t := range s.Types {
		if t.Name != name {
			continue
		}
		if t.Positive {
			return fmt.Errorf("type %q is protected", name)
		}
		s.Types = append(s.Types[:i], s.Types[i+1:]...)
		return nil
	}
	return fmt.Errorf("type %q does not exist", name)
}
