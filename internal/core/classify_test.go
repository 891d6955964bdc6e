package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPayableStatus(t *testing.T) {
	cases := []struct {
		days int
		want Status
	}{
		{-15, StatusOverdue},
		{-1, StatusOverdue},
		{0, StatusCritical},
		{3, StatusCritical},
		{7, StatusCritical},
		{8, StatusWarning},
		{10, StatusWarning},
		{15, StatusWarning},
		{22, StatusAttention},
		{25, StatusAttention},
		{28, StatusNormal},
	}
	for _, tc := range cases {
		if got := (Payable{DaysUntilDue: tc.days}).Status(); got != tc.want {
			t.Errorf("payable(%d) = %s, want %s", tc.days, got, tc.want)
		}
	}
}

func TestDelinquencyStatus(t *testing.T) {
	cases := []struct {
		days int
		want Status
	}{
		{45, StatusCritical},
		{31, StatusCritical},
		{30, StatusWarning},
		{21, StatusWarning},
		{20, StatusAttention},
		{1, StatusAttention},
		{0, StatusNormal},
	}
	for _, tc := range cases {
		if got := (Receivable{DaysOverdue: tc.days}).Status(); got != tc.want {
			t.Errorf("delinquency(%d) = %s, want %s", tc.days, got, tc.want)
		}
	}
}

func TestBudgetClassifier(t *testing.T) {
	c := MustClassifier(ClassifierBudget)
	cases := []struct {
		v    float64
		want Status
	}{
		{2.9, StatusSuccess},
		{3.0, StatusSuccess},
		{-3.0, StatusSuccess},
		{7, StatusWarning},
		{10.0, StatusWarning},
		{-10.01, StatusDanger},
		{15, StatusDanger},
	}
	for _, tc := range cases {
		if got := c.Classify(decimal.NewFromFloat(tc.v)); got != tc.want {
			t.Errorf("budget(%v) = %s, want %s", tc.v, got, tc.want)
		}
	}
	if got := c.ClassifyRatio(UndefinedRatio()); got != StatusDanger {
		t.Errorf("budget(undefined) = %s, want %s", got, StatusDanger)
	}
}

func TestGoalAndPricingClassifiers(t *testing.T) {
	goal := MustClassifier(ClassifierGoal)
	for v, want := range map[float64]Status{120: StatusAbove, 100: StatusAbove, 95: StatusNear, 90: StatusNear, 89.9: StatusBelow} {
		if got := goal.Classify(decimal.NewFromFloat(v)); got != want {
			t.Errorf("goal(%v) = %s, want %s", v, got, want)
		}
	}
	expense := MustClassifier(ClassifierExpenseGoal)
	for v, want := range map[float64]Status{80: StatusWithin, 100: StatusWithin, 105: StatusAttention, 110: StatusAttention, 120: StatusExceeded} {
		if got := expense.Classify(decimal.NewFromFloat(v)); got != want {
			t.Errorf("expense-goal(%v) = %s, want %s", v, got, want)
		}
	}
	pricing := MustClassifier(ClassifierPricing)
	for v, want := range map[float64]Status{44.38: StatusHealthy, 30: StatusHealthy, 24.81: StatusWarning, 19.73: StatusRisk} {
		if got := pricing.Classify(decimal.NewFromFloat(v)); got != want {
			t.Errorf("pricing(%v) = %s, want %s", v, got, want)
		}
	}
}

func TestClassifierFirstMatchWins(t *testing.T) {
	c := NewClassifier("overlap", "none",
		Rule{"first", AtLeast(0)},
		Rule{"second", AtLeast(10)},
	)
	if got := c.ClassifyInt(20); got != "first" {
		t.Errorf("Classify(20) = %s, want first", got)
	}
	if got := c.ClassifyInt(-1); got != "none" {
		t.Errorf("Classify(-1) = %s, want none", got)
	}
	want := []Status{"first", "second", "none"}
	got := c.Statuses()
	if len(got) != len(want) {
		t.Fatalf("Statuses() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Statuses()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestRegisterClassifier(t *testing.T) {
	if _, err := GetClassifier("missing"); err == nil {
		t.Fatalf("GetClassifier(missing) expected error")
	}
	RegisterClassifier("test-sign", NewClassifier("test-sign", "positive", Rule{"negative", LessThan(0)}))
	c, err := GetClassifier("test-sign")
	if err != nil {
		t.Fatalf("GetClassifier() = %v", err)
	}
	if got := c.ClassifyInt(-5); got != "negative" {
		t.Errorf("Classify(-5) = %s, want negative", got)
	}
}

func TestDistribution(t *testing.T) {
	payables := []Payable{
		{TotalAmount: Reais(52000), DaysUntilDue: -15},
		{TotalAmount: Reais(48000), DaysUntilDue: -8},
		{TotalAmount: Reais(42000), DaysUntilDue: 3},
		{TotalAmount: Reais(38000), DaysUntilDue: 8},
		{TotalAmount: Reais(15000), DaysUntilDue: 40},
	}
	buckets := DueDistribution(payables)
	want := []Bucket{
		{BucketDueOverdue, 2, Reais(100000)},
		{BucketDue0to7, 1, Reais(42000)},
		{BucketDue8to30, 1, Reais(38000)},
		{BucketDueOver30, 1, Reais(15000)},
	}
	if len(buckets) != len(want) {
		t.Fatalf("DueDistribution() = %v, want %v", buckets, want)
	}
	for i := range want {
		if buckets[i] != want[i] {
			t.Errorf("DueDistribution()[%d] = %+v, want %+v", i, buckets[i], want[i])
		}
	}

	aging := AgingDistribution([]Receivable{
		{TotalDue: Reais(45000), DaysOverdue: 45},
		{TotalDue: Reais(15000), DaysOverdue: 12},
		{TotalDue: Reais(25000), DaysOverdue: 22},
	})
	counts := map[Status]int{}
	for _, b := range aging {
		counts[b.Status] = b.Count
	}
	if counts[BucketAging1to15] != 1 || counts[BucketAging16to30] != 1 || counts[BucketAging31to60] != 1 || counts[BucketAgingOver60] != 0 {
		t.Errorf("AgingDistribution() = %+v", aging)
	}
}

func TestBudgetLine(t *testing.T) {
	b := BudgetLine{Planned: Reais(80000), Actual: Reais(92000)}
	if b.Variance() != Reais(12000) {
		t.Errorf("Variance() = %v, want %v", b.Variance(), Reais(12000))
	}
	if f := b.VariancePercent().Float64(); f != 15 {
		t.Errorf("VariancePercent() = %v, want 15", f)
	}
	if f := b.ExecutionPercent().Float64(); f != 115 {
		t.Errorf("ExecutionPercent() = %v, want 115", f)
	}
	if b.Status() != StatusDanger {
		t.Errorf("Status() = %s, want %s", b.Status(), StatusDanger)
	}
	zero := BudgetLine{Actual: Reais(1)}
	if zero.VariancePercent().Defined() || zero.ExecutionPercent().Defined() {
		t.Errorf("zero planned should give undefined ratios")
	}
}

func TestProductMargins(t *testing.T) {
	p := Product{FixedCost: Money{Cents: 1500}, VariableCost: Money{Cents: 3500}, Price: Money{Cents: 8990}}
	if p.CMV() != Reais(50) {
		t.Errorf("CMV() = %v, want %v", p.CMV(), Reais(50))
	}
	if f := p.GrossMargin().Float64(); f != 44.38 {
		t.Errorf("GrossMargin() = %v, want 44.38", f)
	}
	if f := p.NetMargin().Float64(); f != 28.85 {
		t.Errorf("NetMargin() = %v, want 28.85", f)
	}
	if p.Status() != StatusHealthy {
		t.Errorf("Status() = %s, want %s", p.Status(), StatusHealthy)
	}
	free := Product{Price: Money{}}
	if free.GrossMargin().Defined() || free.Status() != StatusRisk {
		t.Errorf("zero price: margin %v status %s", free.GrossMargin(), free.Status())
	}
}
