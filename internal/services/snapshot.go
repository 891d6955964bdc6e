package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"financeiro/internal/core"
)

// Snapshot holds every exportable report computed at one instant.
type Snapshot struct {
	GeneratedAt time.Time
	DRE         IncomeStatementReport
	DFC         CashFlowReport
	Budget      BudgetReport
	Delinquency DelinquencyReport
	Payables    PayablesReport
	Pricing     PricingReport
}

// Snapshot builds the exportable reports concurrently.
func (s *ReportService) Snapshot(ctx context.Context, mode core.BalanceMode) (Snapshot, error) {
	snap := Snapshot{GeneratedAt: time.Now()}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.DRE, err = s.IncomeStatement(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.DFC, err = s.CashFlow(ctx, mode)
		return err
	})
	g.Go(func() (err error) {
		snap.Budget, err = s.Budget(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Delinquency, err = s.Delinquency(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Payables, err = s.Payables(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Pricing, err = s.Pricing(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
