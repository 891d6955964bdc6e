package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"financeiro/internal/core"
)

// Dashboard is the KPI snapshot shown on the landing page. Amounts refer to
// the last period of the statements.
type Dashboard struct {
	Period core.Period `json:"period"`

	NetRevenue    core.Money `json:"netRevenue"`
	NetIncome     core.Money `json:"netIncome"`
	NetMargin     core.Ratio `json:"netMargin"`
	RevenueGrowth core.Ratio `json:"revenueGrowth"`

	BalanceMode   core.BalanceMode `json:"balanceMode"`
	CashBalance   core.Money       `json:"cashBalance"`
	CashNetChange core.Money       `json:"cashNetChange"`

	BudgetVariance core.Ratio `json:"budgetVariance"`
	OnBudget       int        `json:"onBudget"`
	BudgetLines    int        `json:"budgetLines"`

	Receivables         core.Money `json:"receivables"`
	CriticalReceivables int        `json:"criticalReceivables"`

	Payables        core.Money `json:"payables"`
	OverduePayables int        `json:"overduePayables"`
	DueThisWeek     int        `json:"dueThisWeek"`

	AverageGrossMargin core.Ratio `json:"averageGrossMargin"`
}

// Dashboard builds every report concurrently and keeps the headline figures.
// Each goroutine writes its own fields.
func (s *ReportService) Dashboard(ctx context.Context, mode core.BalanceMode) (Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		st, err := s.source.IncomeStatement(ctx)
		if err != nil {
			return err
		}
		last, _ := st.Calendar.Last()
		prev := last.Prev()
		d.Period = last
		for _, l := range st.Resolve() {
			switch l.ID {
			case LineNetRevenue:
				d.NetRevenue = l.Values.At(last)
				d.RevenueGrowth = core.HorizontalAnalysis(d.NetRevenue, l.Values.At(prev))
			case LineNetIncome:
				d.NetIncome = l.Values.At(last)
			}
		}
		d.NetMargin = core.MarginPercent(d.NetIncome, d.NetRevenue)
		return nil
	})

	g.Go(func() error {
		cf, err := s.CashFlow(ctx, mode)
		if err != nil {
			return err
		}
		d.BalanceMode = cf.Mode
		if n := len(cf.Balances); n > 0 {
			d.CashBalance = cf.Balances[n-1].Ending
			d.CashNetChange = cf.Balances[n-1].Delta
		}
		return nil
	})

	g.Go(func() error {
		b, err := s.Budget(ctx)
		if err != nil {
			return err
		}
		d.BudgetVariance = b.Total.VariancePercent
		d.OnBudget = b.OnBudget
		d.BudgetLines = len(b.Lines)
		return nil
	})

	g.Go(func() error {
		r, err := s.Delinquency(ctx)
		if err != nil {
			return err
		}
		d.Receivables = r.Summary.Total
		d.CriticalReceivables = r.Critical
		return nil
	})

	g.Go(func() error {
		p, err := s.Payables(ctx)
		if err != nil {
			return err
		}
		d.Payables = p.Summary.Total
		d.OverduePayables = p.Overdue
		d.DueThisWeek = p.DueThisWeek
		return nil
	})

	g.Go(func() error {
		p, err := s.Pricing(ctx)
		if err != nil {
			return err
		}
		d.AverageGrossMargin = p.AverageGrossMargin
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}
