package core

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Status is a bucket label assigned by a Classifier.
type Status string

const (
	StatusNormal    Status = "normal"
	StatusAttention Status = "attention"
	StatusWarning   Status = "warning"
	StatusCritical  Status = "critical"
	StatusOverdue   Status = "overdue"

	StatusSuccess Status = "success"
	StatusDanger  Status = "danger"

	StatusHealthy Status = "healthy"
	StatusRisk    Status = "risk"

	StatusAbove Status = "above"
	StatusNear  Status = "near"
	StatusBelow Status = "below"

	StatusWithin   Status = "within"
	StatusExceeded Status = "exceeded"
)

// Aging and due-date buckets.
const (
	BucketCurrent     Status = "current"
	BucketAging1to15  Status = "1-15"
	BucketAging16to30 Status = "16-30"
	BucketAging31to60 Status = "31-60"
	BucketAgingOver60 Status = ">60"

	BucketDueOverdue Status = "overdue"
	BucketDue0to7    Status = "0-7"
	BucketDue8to30   Status = "8-30"
	BucketDueOver30  Status = ">30"
)

// Registered classifier names.
const (
	ClassifierDelinquency = "delinquency"
	ClassifierPayable     = "payable"
	ClassifierBudget      = "budget"
	ClassifierPricing     = "pricing"
	ClassifierGoal        = "goal"
	ClassifierExpenseGoal = "expense-goal"
	ClassifierAging       = "aging"
	ClassifierDueDate     = "due-date"
)

type (
	// Predicate tests a classified value.
	Predicate func(v decimal.Decimal) bool

	// Rule assigns Status when its predicate matches.
	Rule struct {
		Status Status
		When   Predicate
	}

	// Classifier maps a value to the status of the first matching rule.
	Classifier struct {
		name     string
		rules    []Rule
		fallback Status
	}

	// Bucket is one entry of a distribution.
	Bucket struct {
		Status Status `json:"status"`
		Count  int    `json:"count"`
		Total  Money  `json:"total"`
	}
)

func LessThan(n float64) Predicate {
	t := decimal.NewFromFloat(n)
	return func(v decimal.Decimal) bool { return v.LessThan(t) }
}

func AtMost(n float64) Predicate {
	t := decimal.NewFromFloat(n)
	return func(v decimal.Decimal) bool { return v.LessThanOrEqual(t) }
}

func GreaterThan(n float64) Predicate {
	t := decimal.NewFromFloat(n)
	return func(v decimal.Decimal) bool { return v.GreaterThan(t) }
}

func AtLeast(n float64) Predicate {
	t := decimal.NewFromFloat(n)
	return func(v decimal.Decimal) bool { return v.GreaterThanOrEqual(t) }
}

// AbsAtMost matches when |v| <= n.
func AbsAtMost(n float64) Predicate {
	t := decimal.NewFromFloat(n)
	return func(v decimal.Decimal) bool { return v.Abs().LessThanOrEqual(t) }
}

// NewClassifier builds a classifier. Rules are tried in order.
func NewClassifier(name string, fallback Status, rules ...Rule) Classifier {
	return Classifier{name: name, rules: rules, fallback: fallback}
}

func (c Classifier) Name() string {
	return c.name
}

func (c Classifier) Classify(v decimal.Decimal) Status {
	for _, r := range c.rules {
		if r.When(v) {
			return r.Status
		}
	}
	return c.fallback
}

func (c Classifier) ClassifyInt(v int) Status {
	return c.Classify(decimal.NewFromInt(int64(v)))
}

// ClassifyRatio classifies a defined ratio; undefined ratios get the fallback.
func (c Classifier) ClassifyRatio(r Ratio) Status {
	v, ok := r.Value()
	if !ok {
		return c.fallback
	}
	return c.Classify(v)
}

// Statuses lists every status the classifier can return, in rule order.
func (c Classifier) Statuses() []Status {
	out := make([]Status, 0, len(c.rules)+1)
	seen := map[Status]bool{}
	for _, r := range c.rules {
		if !seen[r.Status] {
			seen[r.Status] = true
			out = append(out, r.Status)
		}
	}
	if !seen[c.fallback] {
		out = append(out, c.fallback)
	}
	return out
}

// Distribute counts records per status and sums their amounts. Every status
// of the classifier is present, in rule order.
func Distribute[T any](c Classifier, records []T, value func(T) decimal.Decimal, amount func(T) Money) []Bucket {
	statuses := c.Statuses()
	index := make(map[Status]int, len(statuses))
	out := make([]Bucket, len(statuses))
	for i, s := range statuses {
		index[s] = i
		out[i] = Bucket{Status: s}
	}
	for _, r := range records {
		i := index[c.Classify(value(r))]
		out[i].Count++
		out[i].Total = out[i].Total.Add(amount(r))
	}
	return out
}

var (
	classifiersMu sync.RWMutex
	classifiers   = map[string]Classifier{
		ClassifierDelinquency: NewClassifier(ClassifierDelinquency, StatusNormal,
			Rule{StatusCritical, GreaterThan(30)},
			Rule{StatusWarning, GreaterThan(20)},
			Rule{StatusAttention, GreaterThan(0)},
		),
		ClassifierPayable: NewClassifier(ClassifierPayable, StatusNormal,
			Rule{StatusOverdue, LessThan(0)},
			Rule{StatusCritical, AtMost(7)},
			Rule{StatusWarning, AtMost(15)},
			Rule{StatusAttention, AtMost(25)},
		),
		ClassifierBudget: NewClassifier(ClassifierBudget, StatusDanger,
			Rule{StatusSuccess, AbsAtMost(3)},
			Rule{StatusWarning, AbsAtMost(10)},
		),
		ClassifierPricing: NewClassifier(ClassifierPricing, StatusRisk,
			Rule{StatusHealthy, AtLeast(30)},
			Rule{StatusWarning, AtLeast(20)},
		),
		ClassifierGoal: NewClassifier(ClassifierGoal, StatusBelow,
			Rule{StatusAbove, AtLeast(100)},
			Rule{StatusNear, AtLeast(90)},
		),
		// Spending without a budget counts as exceeded.
		ClassifierExpenseGoal: NewClassifier(ClassifierExpenseGoal, StatusExceeded,
			Rule{StatusWithin, AtMost(100)},
			Rule{StatusAttention, AtMost(110)},
		),
		ClassifierAging: NewClassifier(ClassifierAging, BucketAgingOver60,
			Rule{BucketCurrent, AtMost(0)},
			Rule{BucketAging1to15, AtMost(15)},
			Rule{BucketAging16to30, AtMost(30)},
			Rule{BucketAging31to60, AtMost(60)},
		),
		ClassifierDueDate: NewClassifier(ClassifierDueDate, BucketDueOver30,
			Rule{BucketDueOverdue, LessThan(0)},
			Rule{BucketDue0to7, AtMost(7)},
			Rule{BucketDue8to30, AtMost(30)},
		),
	}
)

// GetClassifier returns the registered classifier with name.
func GetClassifier(name string) (Classifier, error) {
	classifiersMu.RLock()
	defer classifiersMu.RUnlock()
	c, ok := classifiers[name]
	if !ok {
		return Classifier{}, fmt.Errorf("unknown classifier: %s", name)
	}
	return c, nil
}

// MustClassifier is GetClassifier for the built-in names.
func MustClassifier(name string) Classifier {
	c, err := GetClassifier(name)
	if err != nil {
		panic(err)
	}
	return c
}

// RegisterClassifier adds or replaces a classifier.
func RegisterClassifier(name string, c Classifier) {
	classifiersMu.Lock()
	defer classifiersMu.Unlock()
	classifiers[name] = c
}
