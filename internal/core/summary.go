package core

import "sort"

// DayFlow is the income, expense and balance of one day of the ledger.
type DayFlow struct {
	Date    Date    `json:"date"`
	Income  Money   `json:"income"`
	Expense Money   `json:"expense"`
	Balance Money   `json:"balance"`
	Entries []Entry `json:"entries"`
}

// FlowTotals sums a range of days.
type FlowTotals struct {
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
	Balance Money `json:"balance"`
}

// GoalProgress is the realized amount against the goal for one entry type.
type GoalProgress struct {
	TypeID     string `json:"typeId"`
	TypeName   string `json:"typeName"`
	Goal       Money  `json:"goal"`
	Realized   Money  `json:"realized"`
	Attainment Ratio  `json:"attainment"`
	Status     Status `json:"status"`
}

// GroupByDay buckets entries dated within [from, to] per day, oldest first.
// A zero bound is open. Days without entries are omitted.
func GroupByDay(entries []Entry, from, to Date) []DayFlow {
	byDay := map[string]*DayFlow{}
	for _, e := range entries {
		if (!from.IsZero() && e.Date.Before(from.Time)) || (!to.IsZero() && e.Date.After(to.Time)) {
			continue
		}
		key := e.Date.String()
		day, ok := byDay[key]
		if !ok {
			day = &DayFlow{Date: e.Date}
			byDay[key] = day
		}
		if e.Flow == Income {
			day.Income = day.Income.Add(e.Amount)
		} else {
			day.Expense = day.Expense.Add(e.Amount)
		}
		day.Balance = day.Balance.Add(e.Signed())
		day.Entries = append(day.Entries, e)
	}
	out := make([]DayFlow, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out
}

func TotalFlow(days []DayFlow) FlowTotals {
	var t FlowTotals
	for _, d := range days {
		t.Income = t.Income.Add(d.Income)
		t.Expense = t.Expense.Add(d.Expense)
		t.Balance = t.Balance.Add(d.Balance)
	}
	return t
}

// NewGoalProgress computes attainment as realized over goal. Income goals
// are met from 100%; expense goals are kept up to 100%.
func NewGoalProgress(flow Flow, typeID, name string, goal, realized Money) GoalProgress {
	classifier := ClassifierGoal
	if flow == Expense {
		classifier = ClassifierExpenseGoal
	}
	att := percentOf(realized, goal)
	return GoalProgress{
		TypeID:     typeID,
		TypeName:   name,
		Goal:       goal,
		Realized:   realized,
		Attainment: att,
		Status:     MustClassifier(classifier).ClassifyRatio(att),
	}
}
