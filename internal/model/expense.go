// Package model defines domain types for spendlog expenses and summaries.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// DateLayout is the timestamp layout written for new expenses: local time
// with microsecond precision and no zone.
const DateLayout = "2006-01-02T15:04:05.000000"

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// Amounts are bounded so that printing one stays cheap: at most
// maxAmountDigits significant digits scaled by 10^±maxAmountExponent.
const (
	maxAmountDigits   = 64
	maxAmountExponent = 64
)

// dateLayouts are tried in order when interpreting an expense date.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Expense is a single recorded outlay. Records carry no identifier; they are
// told apart only by position and content.
type Expense struct {
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        string
}

// expenseJSON is the on-disk shape of an Expense.
type expenseJSON struct {
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
}

// NewExpense builds an expense stamped with now.
func NewExpense(amount decimal.Decimal, category, description string, now time.Time) Expense {
	return Expense{
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        now.Format(DateLayout),
	}
}

// ParseAmount parses user input as a decimal number.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if err := checkAmountRange(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// checkAmountRange rejects amounts too large or too precise to print.
func checkAmountRange(d decimal.Decimal) error {
	exp := d.Exponent()
	if exp > maxAmountExponent || exp < -maxAmountExponent || d.NumDigits() > maxAmountDigits {
		return fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	return nil
}

// ParseDate interprets s with any of the accepted layouts. Zone-less values
// are read as local time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Time returns the parsed date and whether parsing succeeded.
func (e Expense) Time() (time.Time, bool) {
	t, err := ParseDate(e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Validate checks that the amount is in range and the date, when set, is
// one we can read back. Category and description are free text and may be
// empty.
func (e Expense) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Amount, validation.By(func(v interface{}) error {
			d, _ := v.(decimal.Decimal)
			return checkAmountRange(d)
		})),
		validation.Field(&e.Date, validation.By(func(v interface{}) error {
			s, _ := v.(string)
			if s == "" {
				return nil
			}
			_, err := ParseDate(s)
			return err
		})),
	)
}

// Equal reports whether two expenses hold the same values field for field.
func (e Expense) Equal(o Expense) bool {
	return e.Amount.Equal(o.Amount) &&
		e.Category == o.Category &&
		e.Description == o.Description &&
		e.Date == o.Date
}

// MarshalJSON writes the amount as a bare JSON number.
func (e Expense) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(expenseJSON{
		Amount:      json.Number(e.Amount.String()),
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date,
	})
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON accepts the amount as a number or a numeric string.
func (e *Expense) UnmarshalJSON(data []byte) error {
	var raw struct {
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        string          `json:"date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := checkAmountRange(raw.Amount); err != nil {
		return err
	}
	*e = Expense{
		Amount:      raw.Amount,
		Category:    raw.Category,
		Description: raw.Description,
		Date:        raw.Date,
	}
	return nil
}
