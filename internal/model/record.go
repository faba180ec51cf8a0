package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies where a record came from.
type Kind string

const (
	KindTransaction Kind = "transaction"
	KindPurchase    Kind = "purchase"
)

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	return k == KindTransaction || k == KindPurchase
}

// Record is the canonical financial record every source row is mapped to.
type Record struct {
	Date        time.Time       // calendar date, UTC midnight
	Amount      decimal.Decimal // signed
	Description string
	Category    string // empty for transactions
	ID          string // bank identifier or minted UUID
	Kind        Kind
}

// Validate checks the record invariants.
func (r Record) Validate() error {
	if r.ID == "" {
		return errors.New("record has no id")
	}
	if !r.Kind.IsValid() {
		return fmt.Errorf("invalid kind %q", r.Kind)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("record %s has no date", r.ID)
	}
	if r.Kind == KindTransaction && r.Category != "" {
		return fmt.Errorf("transaction %s has a category", r.ID)
	}
	return nil
}

func (r Record) String() string {
	return fmt.Sprintf("<Record kind=%s date=%s amount=%s>", r.Kind, r.Date.Format("2006-01-02"), r.Amount)
}
