package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  Flow = "income"
	Expense Flow = "expense"
)

const dateLayout = "2006-01-02"

type (
	// Flow is the direction of a ledger entry, goal or entry type.
	Flow string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Entry is a manual ledger record (lançamento).
	Entry struct {
		ID              string `json:"id"`
		Flow            Flow   `json:"flow"`
		TypeID          string `json:"typeId"`
		SubcategoryID   string `json:"subcategoryId,omitempty"`
		Description     string `json:"description"`
		Amount          Money  `json:"amount"`
		Date            Date   `json:"date"`
		CounterpartyID  string `json:"counterpartyId,omitempty"`
		ProjectID       string `json:"projectId,omitempty"`
		PaymentMethodID string `json:"paymentMethodId,omitempty"`
	}

	// Goal is a budgeted amount for one entry type in one period.
	Goal struct {
		ID     string `json:"id"`
		Period Period `json:"period"`
		Flow   Flow   `json:"flow"`
		TypeID string `json:"typeId"`
		Amount Money  `json:"amount"`
	}
)

var (
	ErrInvalidDay         = errors.New("invalid day")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidFlow        = errors.New("invalid flow")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrEmptyName          = errors.New("empty name")
	ErrEmptyType          = errors.New("empty entry type")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateID        = errors.New("duplicate id")
	ErrBuiltinEntry       = errors.New("built-in entry cannot be deleted")
)

func (f Flow) IsValid() bool {
	return f == Income || f == Expense
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date cannot be zero", ErrInvalidDate)
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// Period returns the year-month the date falls in.
func (d Date) Period() Period {
	return NewPeriod(d.Year(), d.Month())
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO date (2026-01-15).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Entry) Validate() error {
	if !e.Flow.IsValid() {
		return ErrInvalidFlow
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.TypeID) == "" {
		return ErrEmptyType
	}
	return nil
}

// Signed returns the amount with the flow's direction applied.
func (e Entry) Signed() Money {
	if e.Flow == Expense {
		return e.Amount.Neg()
	}
	return e.Amount
}

func (g Goal) Validate() error {
	if !g.Flow.IsValid() {
		return ErrInvalidFlow
	}
	if err := g.Period.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(g.TypeID) == "" {
		return ErrEmptyType
	}
	return g.Amount.Validate()
}
