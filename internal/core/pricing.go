package core

import "github.com/shopspring/decimal"

// netMarginFactor approximates taxes and overhead over the gross margin.
var netMarginFactor = decimal.RequireFromString("0.65")

// Product is a priced item with its unit costs.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FixedCost    Money  `json:"fixedCost"`
	VariableCost Money  `json:"variableCost"`
	Price        Money  `json:"price"`
}

// CMV is the unit cost of goods sold.
func (p Product) CMV() Money {
	return p.FixedCost.Add(p.VariableCost)
}

func (p Product) GrossMargin() Ratio {
	return percentOf(p.Price.Sub(p.CMV()), p.Price)
}

func (p Product) NetMargin() Ratio {
	return p.GrossMargin().Mul(netMarginFactor)
}

func (p Product) Status() Status {
	return MustClassifier(ClassifierPricing).ClassifyRatio(p.GrossMargin())
}
