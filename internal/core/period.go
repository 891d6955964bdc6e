package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Period is a year-month key such as "2024-01". String order is chronological order.
type Period string

// Calendar is a strictly increasing sequence of periods.
type Calendar []Period

var (
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrInvalidCalendar = errors.New("invalid calendar")
)

var monthLabels = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// NewPeriod builds the key for year and month (1-12).
func NewPeriod(year, month int) Period {
	return Period(fmt.Sprintf("%04d-%02d", year, month))
}

// ParsePeriod validates and normalizes a "YYYY-MM" key.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.TrimSpace(s))
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

func (p Period) Validate() error {
	s := string(p)
	if len(s) != 7 || s[4] != '-' || !allDigits(s[:4]) || !allDigits(s[5:]) {
		return ErrInvalidPeriod
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil || year < 1 {
		return ErrInvalidPeriod
	}
	month, err := strconv.Atoi(s[5:])
	if err != nil || month < 1 || month > 12 {
		return ErrInvalidPeriod
	}
	return nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (p Period) Year() int {
	if len(p) != 7 {
		return 0
	}
	y, _ := strconv.Atoi(string(p)[:4])
	return y
}

func (p Period) Month() int {
	if len(p) != 7 {
		return 0
	}
	m, _ := strconv.Atoi(string(p)[5:])
	return m
}

// Label renders the display label, e.g. "Jan/24".
func (p Period) Label() string {
	if p.Validate() != nil {
		return string(p)
	}
	return fmt.Sprintf("%s/%02d", monthLabels[p.Month()-1], p.Year()%100)
}

func (p Period) Next() Period {
	if p.Month() == 12 {
		return NewPeriod(p.Year()+1, 1)
	}
	return NewPeriod(p.Year(), p.Month()+1)
}

func (p Period) Prev() Period {
	if p.Month() == 1 {
		return NewPeriod(p.Year()-1, 12)
	}
	return NewPeriod(p.Year(), p.Month()-1)
}

// Before reports whether p is strictly earlier than q.
func (p Period) Before(q Period) bool {
	return p < q
}

// Bounds returns the first and last day of the period.
func (p Period) Bounds() (Date, Date) {
	first := NewDate(p.Year(), p.Month(), 1)
	last := Date{Time: first.AddDate(0, 1, -1)}
	return first, last
}

// MonthRange returns n consecutive periods starting at from.
func MonthRange(from Period, n int) Calendar {
	out := make(Calendar, 0, n)
	p := from
	for i := 0; i < n; i++ {
		out = append(out, p)
		p = p.Next()
	}
	return out
}

func (c Calendar) Validate() error {
	for i, p := range c {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidCalendar, p)
		}
		if i > 0 && !c[i-1].Before(p) {
			return fmt.Errorf("%w: %q does not follow %q", ErrInvalidCalendar, p, c[i-1])
		}
	}
	return nil
}

// Index returns the position of p, or -1.
func (c Calendar) Index(p Period) int {
	for i, q := range c {
		if q == p {
			return i
		}
	}
	return -1
}

func (c Calendar) First() (Period, bool) {
	if len(c) == 0 {
		return "", false
	}
	return c[0], true
}

func (c Calendar) Last() (Period, bool) {
	if len(c) == 0 {
		return "", false
	}
	return c[len(c)-1], true
}

// Labels maps every period to its display label.
func (c Calendar) Labels() map[Period]string {
	out := make(map[Period]string, len(c))
	for _, p := range c {
		out[p] = p.Label()
	}
	return out
}
