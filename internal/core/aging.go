package core

import "github.com/shopspring/decimal"

type (
	// Receivable is an overdue client balance.
	Receivable struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Document    string `json:"document"`
		TotalDue    Money  `json:"totalDue"`
		DaysOverdue int    `json:"daysOverdue"`
	}

	// Payable is an open supplier balance. Negative days means overdue.
	Payable struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Document     string `json:"document"`
		TotalAmount  Money  `json:"totalAmount"`
		DaysUntilDue int    `json:"daysUntilDue"`
	}
)

func (r Receivable) Status() Status {
	return MustClassifier(ClassifierDelinquency).ClassifyInt(r.DaysOverdue)
}

func (r Receivable) AgingBucket() Status {
	return MustClassifier(ClassifierAging).ClassifyInt(r.DaysOverdue)
}

func (p Payable) Status() Status {
	return MustClassifier(ClassifierPayable).ClassifyInt(p.DaysUntilDue)
}

func (p Payable) DueBucket() Status {
	return MustClassifier(ClassifierDueDate).ClassifyInt(p.DaysUntilDue)
}

// AgingDistribution groups receivables into aging buckets.
func AgingDistribution(rs []Receivable) []Bucket {
	return Distribute(MustClassifier(ClassifierAging), rs,
		func(r Receivable) decimal.Decimal { return decimal.NewFromInt(int64(r.DaysOverdue)) },
		func(r Receivable) Money { return r.TotalDue },
	)
}

// DueDistribution groups payables into due-date buckets.
func DueDistribution(ps []Payable) []Bucket {
	return Distribute(MustClassifier(ClassifierDueDate), ps,
		func(p Payable) decimal.Decimal { return decimal.NewFromInt(int64(p.DaysUntilDue)) },
		func(p Payable) Money { return p.TotalAmount },
	)
}
