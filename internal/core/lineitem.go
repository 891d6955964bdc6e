package core

import (
	"errors"
	"fmt"
	"sort"
)

const (
	SignAddition    Sign = "addition"
	SignSubtraction Sign = "subtraction"
)

const (
	KindCategory     Kind = "category"
	KindDetail       Kind = "detail"
	KindCounterparty Kind = "counterparty"
	KindSubtotal     Kind = "subtotal"
)

type (
	// Sign tells whether a line adds to or subtracts from its parent. Subtraction
	// lines store already-negated amounts so aggregation is always a plain sum.
	Sign string

	Kind string

	// Values maps a period to an amount. Missing periods read as zero.
	Values map[Period]Money

	// LineItem is a node of a financial statement tree. Only leaves carry
	// authored values; parents are derived with RollUp.
	LineItem struct {
		ID       string     `json:"id"`
		Name     string     `json:"name"`
		Kind     Kind       `json:"kind"`
		Sign     Sign       `json:"sign"`
		Values   Values     `json:"values,omitempty"`
		Children []LineItem `json:"children,omitempty"`
	}
)

var (
	ErrEmptyID      = errors.New("empty id")
	ErrSignMismatch = errors.New("subtraction line holds a positive amount")
	ErrSubtotalTree = errors.New("subtotal line cannot have children")
)

// ApplySign converts a user-entered amount into the stored sign convention.
func ApplySign(s Sign, amount Money) Money {
	if s == SignSubtraction {
		return amount.Abs().Neg()
	}
	return amount
}

// At returns the amount for p, zero when absent.
func (v Values) At(p Period) Money {
	return v[p]
}

// Plus returns the elementwise sum as a new map.
func (v Values) Plus(o Values) Values {
	out := make(Values, len(v)+len(o))
	for p, m := range v {
		out[p] = out[p].Add(m)
	}
	for p, m := range o {
		out[p] = out[p].Add(m)
	}
	return out
}

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for p, m := range v {
		out[p] = m
	}
	return out
}

// Periods returns the keys in chronological order.
func (v Values) Periods() []Period {
	out := make([]Period, 0, len(v))
	for p := range v {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (n LineItem) IsLeaf() bool {
	return len(n.Children) == 0
}

// Find returns the node with id in the subtree rooted at n.
func (n LineItem) Find(id string) (LineItem, bool) {
	if n.ID == id {
		return n, true
	}
	for _, c := range n.Children {
		if found, ok := c.Find(id); ok {
			return found, true
		}
	}
	return LineItem{}, false
}

// Walk visits n and its descendants depth-first with their depth.
func (n LineItem) Walk(fn func(node LineItem, depth int)) {
	n.walk(0, fn)
}

func (n LineItem) walk(depth int, fn func(LineItem, int)) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(depth+1, fn)
	}
}

func (n LineItem) Validate() error {
	return validateLines([]LineItem{n})
}

func validateLines(lines []LineItem) error {
	seen := map[string]struct{}{}
	var err error
	for _, line := range lines {
		line.Walk(func(node LineItem, _ int) {
			if err != nil {
				return
			}
			err = validateNode(node, seen)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func validateNode(node LineItem, seen map[string]struct{}) error {
	if node.ID == "" {
		return ErrEmptyID
	}
	if _, dup := seen[node.ID]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateID, node.ID)
	}
	seen[node.ID] = struct{}{}
	if node.Kind == KindSubtotal && !node.IsLeaf() {
		return fmt.Errorf("%w: %s", ErrSubtotalTree, node.ID)
	}
	if node.IsLeaf() && node.Sign == SignSubtraction {
		for p, m := range node.Values {
			if m.Cents > 0 {
				return fmt.Errorf("%w: %s %s", ErrSignMismatch, node.ID, p)
			}
		}
	}
	return nil
}
