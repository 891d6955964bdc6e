package core

import "fmt"

const (
	GroupOperating = "operating"
	GroupInvesting = "investing"
	GroupFinancing = "financing"
)

type (
	// CashFlowGroup is a flat category group of the DFC.
	CashFlowGroup struct {
		ID    string     `json:"id"`
		Name  string     `json:"name"`
		Lines []LineItem `json:"lines"`
	}

	// CashFlow is the flat cash-flow statement with its opening balances.
	CashFlow struct {
		Calendar Calendar        `json:"calendar"`
		Groups   []CashFlowGroup `json:"groups"`
		Opening  Values          `json:"opening"`
	}
)

func (g CashFlowGroup) Total(p Period) Money {
	return SumByPeriod(g.Lines, p)
}

// Totals returns the group total for every period of c.
func (g CashFlowGroup) Totals(c Calendar) Values {
	out := make(Values, len(c))
	for _, p := range c {
		out[p] = g.Total(p)
	}
	return out
}

func (cf CashFlow) Validate() error {
	if err := cf.Calendar.Validate(); err != nil {
		return err
	}
	var lines []LineItem
	for _, g := range cf.Groups {
		lines = append(lines, g.Lines...)
	}
	if err := validateLines(lines); err != nil {
		return fmt.Errorf("cash flow: %w", err)
	}
	return nil
}

// Group returns the group with id.
func (cf CashFlow) Group(id string) (CashFlowGroup, bool) {
	for _, g := range cf.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return CashFlowGroup{}, false
}

// NetChange is the sum of all group totals for p.
func (cf CashFlow) NetChange(p Period) Money {
	var total Money
	for _, g := range cf.Groups {
		total = total.Add(g.Total(p))
	}
	return total
}

// RollForward runs the balance roll-forward over the statement's calendar.
func (cf CashFlow) RollForward(mode BalanceMode) ([]BalanceRow, error) {
	return RollForward(cf.Opening, cf.Calendar, cf.NetChange, mode)
}
