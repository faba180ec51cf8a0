package normalize

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrMissingIdentifier = errors.New("missing transaction identifier")
)

// Accepted input date layouts, tried in order. Day and month may be
// one or two digits; the year needs four.
const (
	isoDateFormat = "2006-1-2"
	dmyDateFormat = "2/1/2006"
)

// OutputDateFormat is the layout written to the merged file.
const OutputDateFormat = "2006-01-02"

// DateError reports a value that matched none of the accepted layouts.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("parsing date %q: expected YYYY-MM-DD or DD/MM/YYYY", e.Value)
}

func (e *DateError) Unwrap() error { return ErrInvalidDate }

// ParseDate accepts YYYY-MM-DD first, then DD/MM/YYYY.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(isoDateFormat, s); err == nil {
		return d, nil
	}
	if d, err := time.Parse(dmyDateFormat, s); err == nil {
		return d, nil
	}
	return time.Time{}, &DateError{Value: s}
}

// ParseAmount parses a signed decimal amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, ErrInvalidAmount)
	}
	return d, nil
}
