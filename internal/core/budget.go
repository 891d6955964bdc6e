package core

type (
	// BudgetLine compares planned and actual amounts of one budget category.
	BudgetLine struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Planned Money  `json:"planned"`
		Actual  Money  `json:"actual"`
	}

	// BudgetMonth is the planned and actual total of one period.
	BudgetMonth struct {
		Period  Period `json:"period"`
		Planned Money  `json:"planned"`
		Actual  Money  `json:"actual"`
	}
)

func (b BudgetLine) Variance() Money {
	return b.Actual.Sub(b.Planned)
}

// VariancePercent is the variance relative to planned.
func (b BudgetLine) VariancePercent() Ratio {
	return percentOf(b.Variance(), b.Planned)
}

// ExecutionPercent is actual relative to planned.
func (b BudgetLine) ExecutionPercent() Ratio {
	return percentOf(b.Actual, b.Planned)
}

// Status classifies the absolute variance percent. Undefined variance is danger.
func (b BudgetLine) Status() Status {
	return MustClassifier(ClassifierBudget).ClassifyRatio(b.VariancePercent())
}

func (m BudgetMonth) Variance() Money {
	return m.Actual.Sub(m.Planned)
}

func (m BudgetMonth) VariancePercent() Ratio {
	return percentOf(m.Variance(), m.Planned)
}

// BudgetTotals sums planned and actual over lines.
func BudgetTotals(lines []BudgetLine) BudgetLine {
	total := BudgetLine{ID: "total", Name: "Total"}
	for _, l := range lines {
		total.Planned = total.Planned.Add(l.Planned)
		total.Actual = total.Actual.Add(l.Actual)
	}
	return total
}

// OnBudget counts the lines classified as success.
func OnBudget(lines []BudgetLine) int {
	n := 0
	for _, l := range lines {
		if l.Status() == StatusSuccess {
			n++
		}
	}
	return n
}
