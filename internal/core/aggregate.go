package core

import (
	"errors"
	"fmt"
)

const (
	// BalanceChained carries each period's ending balance into the next period.
	BalanceChained BalanceMode = "chained"
	// BalanceExternal uses an independently supplied opening balance per period.
	BalanceExternal BalanceMode = "external"
)

// BalanceMode selects how opening balances are obtained in a roll-forward.
type BalanceMode string

var ErrInvalidBalanceMode = errors.New("invalid balance mode")

func (m BalanceMode) IsValid() bool {
	return m == BalanceChained || m == BalanceExternal
}

// ParseBalanceMode accepts "chained" or "external".
func ParseBalanceMode(s string) (BalanceMode, error) {
	m := BalanceMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBalanceMode, s)
	}
	return m, nil
}

// SumByPeriod sums the amounts of the given rows for p. It does not descend
// into the rows' children beyond their own roll-up.
func SumByPeriod(nodes []LineItem, p Period) Money {
	var total Money
	for _, n := range nodes {
		total = total.Add(RollUp(n).At(p))
	}
	return total
}

// RollUp returns the effective values of n: the elementwise sum of its
// children's roll-ups, or its own values for a leaf.
func RollUp(n LineItem) Values {
	if n.IsLeaf() {
		return n.Values.Clone()
	}
	out := Values{}
	for _, c := range n.Children {
		out = out.Plus(RollUp(c))
	}
	return out
}

// Resolve returns a copy of the tree where every node carries its roll-up.
func Resolve(n LineItem) LineItem {
	out := n
	if n.IsLeaf() {
		out.Values = n.Values.Clone()
		return out
	}
	out.Children = make([]LineItem, len(n.Children))
	values := Values{}
	for i, c := range n.Children {
		out.Children[i] = Resolve(c)
		values = values.Plus(out.Children[i].Values)
	}
	out.Values = values
	return out
}

// Drift is a parent whose authored value disagrees with its children.
type Drift struct {
	ID       string `json:"id"`
	Period   Period `json:"period"`
	Authored Money  `json:"authored"`
	Derived  Money  `json:"derived"`
}

// CheckConsistency compares authored parent values with their roll-up.
// Parents without authored values are skipped.
func CheckConsistency(n LineItem) []Drift {
	var drifts []Drift
	n.Walk(func(node LineItem, _ int) {
		if node.IsLeaf() || len(node.Values) == 0 {
			return
		}
		derived := RollUp(node)
		periods := derived.Plus(node.Values).Periods()
		for _, p := range periods {
			if node.Values.At(p) != derived.At(p) {
				drifts = append(drifts, Drift{ID: node.ID, Period: p, Authored: node.Values.At(p), Derived: derived.At(p)})
			}
		}
	})
	return drifts
}

// BalanceRow is one period of a balance roll-forward.
type BalanceRow struct {
	Period  Period `json:"period"`
	Opening Money  `json:"opening"`
	Delta   Money  `json:"delta"`
	Ending  Money  `json:"ending"`
}

// RollForward computes opening, delta and ending balance for every period in
// order. In chained mode only the first opening balance is read.
func RollForward(opening Values, periods Calendar, delta func(Period) Money, mode BalanceMode) ([]BalanceRow, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBalanceMode, mode)
	}
	if err := periods.Validate(); err != nil {
		return nil, err
	}
	rows := make([]BalanceRow, 0, len(periods))
	for i, p := range periods {
		open := opening.At(p)
		if mode == BalanceChained && i > 0 {
			open = rows[i-1].Ending
		}
		d := delta(p)
		rows = append(rows, BalanceRow{Period: p, Opening: open, Delta: d, Ending: open.Add(d)})
	}
	return rows, nil
}

// RunningBalance returns the ending balance per period.
func RunningBalance(opening Values, periods Calendar, delta func(Period) Money, mode BalanceMode) (Values, error) {
	rows, err := RollForward(opening, periods, delta, mode)
	if err != nil {
		return nil, err
	}
	out := make(Values, len(rows))
	for _, r := range rows {
		out[r.Period] = r.Ending
	}
	return out, nil
}
