package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"financeiro/internal/core"
	"financeiro/internal/ports"
)

// Line ids of the income statement read by the reports.
const (
	LineNetRevenue = "receita-liquida"
	LineNetIncome  = "lucro-liquido"
	LineRevenue    = "receita-bruta"
	LineExpenses   = "despesas-operacionais"
)

// DefaultExpansion is the drill-down state of the DRE tree before the user
// opens or closes anything.
func DefaultExpansion() core.ExpansionSet {
	return core.NewExpansionSet(LineRevenue, LineExpenses)
}

// ErrInvalidRange is returned when a date or period range ends before it starts.
var ErrInvalidRange = errors.New("invalid range")

type (
	// StatementRow is a flattened statement row with its analyses.
	StatementRow struct {
		core.Row
		// Vertical is the last-period value over net revenue.
		Vertical core.Ratio `json:"vertical"`
		// Horizontal is the change from the first to the last period.
		Horizontal core.Ratio                 `json:"horizontal"`
		Series     map[core.Period]core.Ratio `json:"series"`
	}

	IncomeStatementReport struct {
		Title    string         `json:"title"`
		Calendar core.Calendar  `json:"calendar"`
		Rows     []StatementRow `json:"rows"`
		Drifts   []core.Drift   `json:"drifts,omitempty"`
	}

	CashFlowGroupReport struct {
		ID     string      `json:"id"`
		Name   string      `json:"name"`
		Rows   []core.Row  `json:"rows"`
		Totals core.Values `json:"totals"`
	}

	CashFlowReport struct {
		Mode      core.BalanceMode      `json:"mode"`
		Calendar  core.Calendar         `json:"calendar"`
		Groups    []CashFlowGroupReport `json:"groups"`
		NetChange core.Values           `json:"netChange"`
		Balances  []core.BalanceRow     `json:"balances"`
	}

	BudgetLineReport struct {
		core.BudgetLine
		Variance         core.Money  `json:"variance"`
		VariancePercent  core.Ratio  `json:"variancePercent"`
		ExecutionPercent core.Ratio  `json:"executionPercent"`
		Status           core.Status `json:"status"`
	}

	BudgetMonthReport struct {
		core.BudgetMonth
		Variance        core.Money `json:"variance"`
		VariancePercent core.Ratio `json:"variancePercent"`
		// Horizontal compares actual with the previous month's actual.
		Horizontal core.Ratio `json:"horizontal"`
		// Share is this month's actual over the total actual.
		Share core.Ratio `json:"share"`
	}

	BudgetReport struct {
		Lines    []BudgetLineReport  `json:"lines"`
		Total    BudgetLineReport    `json:"total"`
		OnBudget int                 `json:"onBudget"`
		Months   []BudgetMonthReport `json:"months"`
	}

	ReceivableReport struct {
		core.Receivable
		Status core.Status `json:"status"`
		Bucket core.Status `json:"bucket"`
	}

	PayableReport struct {
		core.Payable
		Status core.Status `json:"status"`
		Bucket core.Status `json:"bucket"`
	}

	AgingSummary struct {
		Total       core.Money `json:"total"`
		Count       int        `json:"count"`
		AverageDays float64    `json:"averageDays"`
	}

	DelinquencyReport struct {
		Records      []ReceivableReport `json:"records"`
		Summary      AgingSummary       `json:"summary"`
		Critical     int                `json:"critical"`
		Distribution []core.Bucket      `json:"distribution"`
		ByStatus     []core.Bucket      `json:"byStatus"`
	}

	PayablesReport struct {
		Records      []PayableReport `json:"records"`
		Summary      AgingSummary    `json:"summary"`
		Overdue      int             `json:"overdue"`
		DueThisWeek  int             `json:"dueThisWeek"`
		Distribution []core.Bucket   `json:"distribution"`
		ByStatus     []core.Bucket   `json:"byStatus"`
	}

	ProductReport struct {
		core.Product
		CMV         core.Money  `json:"cmv"`
		GrossMargin core.Ratio  `json:"grossMargin"`
		NetMargin   core.Ratio  `json:"netMargin"`
		Status      core.Status `json:"status"`
	}

	PricingReport struct {
		Products           []ProductReport `json:"products"`
		AverageGrossMargin core.Ratio      `json:"averageGrossMargin"`
		AverageNetMargin   core.Ratio      `json:"averageNetMargin"`
		TotalPrice         core.Money      `json:"totalPrice"`
		TotalCMV           core.Money      `json:"totalCmv"`
		OverallMargin      core.Ratio      `json:"overallMargin"`
		Healthy            int             `json:"healthy"`
	}

	DailyFlowReport struct {
		From   core.Date       `json:"from"`
		To     core.Date       `json:"to"`
		Days   []core.DayFlow  `json:"days"`
		Totals core.FlowTotals `json:"totals"`
	}

	GoalReport struct {
		Flow    core.Flow           `json:"flow"`
		From    core.Period         `json:"from"`
		To      core.Period         `json:"to"`
		Items   []core.GoalProgress `json:"items"`
		Overall core.GoalProgress   `json:"overall"`
	}
)

// ReportService builds the dashboard reports from the backend ports.
type ReportService struct {
	source      ports.ReportSource
	ledger      ports.LedgerStore
	registry    ports.RegistryStore
	defaultMode core.BalanceMode
}

func NewReportService(source ports.ReportSource, ledger ports.LedgerStore, registry ports.RegistryStore, defaultMode core.BalanceMode) *ReportService {
	if !defaultMode.IsValid() {
		defaultMode = core.BalanceChained
	}
	return &ReportService{source: source, ledger: ledger, registry: registry, defaultMode: defaultMode}
}

// DefaultMode is the balance mode used when a caller passes none.
func (s *ReportService) DefaultMode() core.BalanceMode {
	return s.defaultMode
}

// IncomeStatement returns the fully expanded DRE with vertical analysis of the
// last period against net revenue and horizontal analysis across the calendar.
func (s *ReportService) IncomeStatement(ctx context.Context) (IncomeStatementReport, error) {
	st, err := s.source.IncomeStatement(ctx)
	if err != nil {
		return IncomeStatementReport{}, fmt.Errorf("read income statement: %w", err)
	}
	lines := st.Resolve()

	first, _ := st.Calendar.First()
	last, _ := st.Calendar.Last()
	var base core.Money
	for _, l := range lines {
		if l.ID == LineNetRevenue {
			base = l.Values.At(last)
		}
	}

	flat := core.FlattenAll(lines)
	rows := make([]StatementRow, len(flat))
	for i, r := range flat {
		rows[i] = StatementRow{
			Row:        r,
			Vertical:   core.VerticalAnalysis(r.Values.At(last), base),
			Horizontal: core.HorizontalAnalysis(r.Values.At(last), r.Values.At(first)),
			Series:     horizontalSeries(r.Values, st.Calendar),
		}
	}

	var drifts []core.Drift
	for _, l := range st.Lines {
		drifts = append(drifts, core.CheckConsistency(l)...)
	}
	return IncomeStatementReport{Title: st.Title, Calendar: st.Calendar, Rows: rows, Drifts: drifts}, nil
}

// horizontalSeries compares every period with the one before it. The first
// period has no predecessor and is undefined.
func horizontalSeries(v core.Values, c core.Calendar) map[core.Period]core.Ratio {
	out := make(map[core.Period]core.Ratio, len(c))
	for i, p := range c {
		if i == 0 {
			out[p] = core.UndefinedRatio()
			continue
		}
		out[p] = core.HorizontalAnalysis(v.At(p), v.At(c[i-1]))
	}
	return out
}

// DrillDown flattens the subtree rooted at rootID, showing children only
// under expanded parents. An empty rootID flattens the whole statement.
func (s *ReportService) DrillDown(ctx context.Context, rootID string, expanded core.ExpansionSet) ([]core.Row, error) {
	st, err := s.source.IncomeStatement(ctx)
	if err != nil {
		return nil, fmt.Errorf("read income statement: %w", err)
	}
	lines := st.Resolve()
	if rootID == "" {
		return core.Flatten(lines, expanded), nil
	}
	for _, l := range lines {
		if root, ok := l.Find(rootID); ok {
			return core.Flatten([]core.LineItem{root}, expanded), nil
		}
	}
	return nil, fmt.Errorf("line %s: %w", rootID, core.ErrNotFound)
}

// CashFlow returns the DFC with group totals, net change and the balance
// roll-forward in mode. An empty mode uses the service default.
func (s *ReportService) CashFlow(ctx context.Context, mode core.BalanceMode) (CashFlowReport, error) {
	if mode == "" {
		mode = s.defaultMode
	}
	if !mode.IsValid() {
		return CashFlowReport{}, fmt.Errorf("%w: %q", core.ErrInvalidBalanceMode, mode)
	}
	cf, err := s.source.CashFlow(ctx)
	if err != nil {
		return CashFlowReport{}, fmt.Errorf("read cash flow: %w", err)
	}

	groups := make([]CashFlowGroupReport, len(cf.Groups))
	for i, g := range cf.Groups {
		groups[i] = CashFlowGroupReport{
			ID:     g.ID,
			Name:   g.Name,
			Rows:   core.FlattenAll(g.Lines),
			Totals: g.Totals(cf.Calendar),
		}
	}
	net := make(core.Values, len(cf.Calendar))
	for _, p := range cf.Calendar {
		net[p] = cf.NetChange(p)
	}
	balances, err := cf.RollForward(mode)
	if err != nil {
		return CashFlowReport{}, fmt.Errorf("roll forward: %w", err)
	}
	return CashFlowReport{Mode: mode, Calendar: cf.Calendar, Groups: groups, NetChange: net, Balances: balances}, nil
}

func budgetLineReport(l core.BudgetLine) BudgetLineReport {
	return BudgetLineReport{
		BudgetLine:       l,
		Variance:         l.Variance(),
		VariancePercent:  l.VariancePercent(),
		ExecutionPercent: l.ExecutionPercent(),
		Status:           l.Status(),
	}
}

// Budget compares planned and actual amounts per category and per month.
func (s *ReportService) Budget(ctx context.Context) (BudgetReport, error) {
	lines, err := s.source.BudgetLines(ctx)
	if err != nil {
		return BudgetReport{}, fmt.Errorf("read budget lines: %w", err)
	}
	months, err := s.source.BudgetMonths(ctx)
	if err != nil {
		return BudgetReport{}, fmt.Errorf("read budget months: %w", err)
	}

	out := BudgetReport{
		Lines:    make([]BudgetLineReport, len(lines)),
		Total:    budgetLineReport(core.BudgetTotals(lines)),
		OnBudget: core.OnBudget(lines),
		Months:   make([]BudgetMonthReport, len(months)),
	}
	for i, l := range lines {
		out.Lines[i] = budgetLineReport(l)
	}

	var totalActual core.Money
	for _, m := range months {
		totalActual = totalActual.Add(m.Actual)
	}
	for i, m := range months {
		horizontal := core.UndefinedRatio()
		if i > 0 {
			horizontal = core.HorizontalAnalysis(m.Actual, months[i-1].Actual)
		}
		out.Months[i] = BudgetMonthReport{
			BudgetMonth:     m,
			Variance:        m.Variance(),
			VariancePercent: m.VariancePercent(),
			Horizontal:      horizontal,
			Share:           core.VerticalAnalysis(m.Actual, totalActual),
		}
	}
	return out, nil
}

func summarize[T any](records []T, amount func(T) core.Money, days func(T) int) AgingSummary {
	var sum AgingSummary
	totalDays := decimal.Zero
	for _, r := range records {
		sum.Total = sum.Total.Add(amount(r))
		totalDays = totalDays.Add(decimal.NewFromInt(int64(days(r))))
	}
	sum.Count = len(records)
	if sum.Count > 0 {
		sum.AverageDays = totalDays.Div(decimal.NewFromInt(int64(sum.Count))).Round(1).InexactFloat64()
	}
	return sum
}

// Delinquency lists overdue receivables with their status and aging bucket.
func (s *ReportService) Delinquency(ctx context.Context) (DelinquencyReport, error) {
	rs, err := s.source.Receivables(ctx)
	if err != nil {
		return DelinquencyReport{}, fmt.Errorf("read receivables: %w", err)
	}
	out := DelinquencyReport{
		Records: make([]ReceivableReport, len(rs)),
		Summary: summarize(rs,
			func(r core.Receivable) core.Money { return r.TotalDue },
			func(r core.Receivable) int { return r.DaysOverdue },
		),
		Distribution: core.AgingDistribution(rs),
		ByStatus: core.Distribute(core.MustClassifier(core.ClassifierDelinquency), rs,
			func(r core.Receivable) decimal.Decimal { return decimal.NewFromInt(int64(r.DaysOverdue)) },
			func(r core.Receivable) core.Money { return r.TotalDue },
		),
	}
	for i, r := range rs {
		out.Records[i] = ReceivableReport{Receivable: r, Status: r.Status(), Bucket: r.AgingBucket()}
		if out.Records[i].Status == core.StatusCritical {
			out.Critical++
		}
	}
	return out, nil
}

// Payables lists open supplier balances with their status and due bucket.
func (s *ReportService) Payables(ctx context.Context) (PayablesReport, error) {
	ps, err := s.source.Payables(ctx)
	if err != nil {
		return PayablesReport{}, fmt.Errorf("read payables: %w", err)
	}
	out := PayablesReport{
		Records: make([]PayableReport, len(ps)),
		Summary: summarize(ps,
			func(p core.Payable) core.Money { return p.TotalAmount },
			func(p core.Payable) int { return p.DaysUntilDue },
		),
		Distribution: core.DueDistribution(ps),
		ByStatus: core.Distribute(core.MustClassifier(core.ClassifierPayable), ps,
			func(p core.Payable) decimal.Decimal { return decimal.NewFromInt(int64(p.DaysUntilDue)) },
			func(p core.Payable) core.Money { return p.TotalAmount },
		),
	}
	for i, p := range ps {
		out.Records[i] = PayableReport{Payable: p, Status: p.Status(), Bucket: p.DueBucket()}
		switch {
		case p.DaysUntilDue < 0:
			out.Overdue++
		case p.DaysUntilDue <= 7:
			out.DueThisWeek++
		}
	}
	return out, nil
}

// Pricing reports unit cost, margins and status per product.
func (s *ReportService) Pricing(ctx context.Context) (PricingReport, error) {
	products, err := s.source.Products(ctx)
	if err != nil {
		return PricingReport{}, fmt.Errorf("read products: %w", err)
	}
	out := PricingReport{Products: make([]ProductReport, len(products))}
	var gross, net []core.Ratio
	for i, p := range products {
		r := ProductReport{
			Product:     p,
			CMV:         p.CMV(),
			GrossMargin: p.GrossMargin(),
			NetMargin:   p.NetMargin(),
			Status:      p.Status(),
		}
		out.Products[i] = r
		out.TotalPrice = out.TotalPrice.Add(p.Price)
		out.TotalCMV = out.TotalCMV.Add(r.CMV)
		gross = append(gross, r.GrossMargin)
		net = append(net, r.NetMargin)
		if r.Status == core.StatusHealthy {
			out.Healthy++
		}
	}
	out.AverageGrossMargin = averageRatio(gross)
	out.AverageNetMargin = averageRatio(net)
	out.OverallMargin = core.MarginPercent(out.TotalPrice.Sub(out.TotalCMV), out.TotalPrice)
	return out, nil
}

// averageRatio is the mean of the defined ratios, undefined when there are none.
func averageRatio(rs []core.Ratio) core.Ratio {
	sum := decimal.Zero
	n := 0
	for _, r := range rs {
		if v, ok := r.Value(); ok {
			sum = sum.Add(v)
			n++
		}
	}
	if n == 0 {
		return core.UndefinedRatio()
	}
	return core.DefinedRatio(sum.Div(decimal.NewFromInt(int64(n))))
}

// DailyFlow groups the ledger entries dated within [from, to] per day. Zero
// bounds are open.
func (s *ReportService) DailyFlow(ctx context.Context, from, to core.Date) (DailyFlowReport, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from.Time) {
		return DailyFlowReport{}, fmt.Errorf("%w: %s is before %s", ErrInvalidRange, to, from)
	}
	entries, err := s.ledger.ListEntries(ctx, from, to)
	if err != nil {
		return DailyFlowReport{}, fmt.Errorf("list entries: %w", err)
	}
	days := core.GroupByDay(entries, from, to)
	return DailyFlowReport{From: from, To: to, Days: days, Totals: core.TotalFlow(days)}, nil
}

// GoalAttainment compares realized entries with goals per entry type over
// the periods from through to.
func (s *ReportService) GoalAttainment(ctx context.Context, flow core.Flow, from, to core.Period) (GoalReport, error) {
	if !flow.IsValid() {
		return GoalReport{}, core.ErrInvalidFlow
	}
	if err := from.Validate(); err != nil {
		return GoalReport{}, err
	}
	if err := to.Validate(); err != nil {
		return GoalReport{}, err
	}
	if to.Before(from) {
		return GoalReport{}, fmt.Errorf("%w: %s is before %s", ErrInvalidRange, to, from)
	}

	goals, err := s.ledger.ListGoals(ctx, flow, from, to)
	if err != nil {
		return GoalReport{}, fmt.Errorf("list goals: %w", err)
	}
	start, _ := from.Bounds()
	_, end := to.Bounds()
	entries, err := s.ledger.ListEntries(ctx, start, end)
	if err != nil {
		return GoalReport{}, fmt.Errorf("list entries: %w", err)
	}
	types, err := s.registry.ListEntryTypes(ctx, flow)
	if err != nil {
		return GoalReport{}, fmt.Errorf("list entry types: %w", err)
	}

	planned := map[string]core.Money{}
	realized := map[string]core.Money{}
	for _, g := range goals {
		planned[g.TypeID] = planned[g.TypeID].Add(g.Amount)
	}
	for _, e := range entries {
		if e.Flow == flow {
			realized[e.TypeID] = realized[e.TypeID].Add(e.Amount)
		}
	}

	out := GoalReport{Flow: flow, From: from, To: to}
	var totalGoal, totalRealized core.Money
	add := func(id, name string) {
		g, r := planned[id], realized[id]
		out.Items = append(out.Items, core.NewGoalProgress(flow, id, name, g, r))
		totalGoal = totalGoal.Add(g)
		totalRealized = totalRealized.Add(r)
		delete(planned, id)
		delete(realized, id)
	}
	for _, t := range types {
		_, hasGoal := planned[t.ID]
		_, hasEntries := realized[t.ID]
		if hasGoal || hasEntries {
			add(t.ID, t.Name)
		}
	}
	// Goals or entries whose type was removed from the registry.
	for _, g := range goals {
		if _, ok := planned[g.TypeID]; ok {
			add(g.TypeID, g.TypeID)
		}
	}
	for _, e := range entries {
		if _, ok := realized[e.TypeID]; ok && e.Flow == flow {
			add(e.TypeID, e.TypeID)
		}
	}
	out.Overall = core.NewGoalProgress(flow, "total", "Total", totalGoal, totalRealized)
	return out, nil
}
