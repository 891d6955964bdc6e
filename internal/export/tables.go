// Package export renders report snapshots as tables for spreadsheets.
package export

import (
	"strings"

	"financeiro/internal/core"
	"financeiro/internal/services"
)

// Tab names, one per report.
const (
	TabDRE         = "DRE"
	TabDFC         = "DFC"
	TabBudget      = "Orcamento"
	TabDelinquency = "Inadimplencia"
	TabPayables    = "Contas a Pagar"
	TabPricing     = "Precificacao"
)

// Table is one spreadsheet tab. Cells hold strings, float64 or int values.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Values returns the header followed by the rows.
func (t Table) Values() [][]any {
	out := make([][]any, 0, len(t.Rows)+1)
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	out = append(out, header)
	return append(out, t.Rows...)
}

// Tables renders every report of snap in tab order.
func Tables(snap services.Snapshot) []Table {
	return []Table{
		dreTable(snap.DRE),
		dfcTable(snap.DFC),
		budgetTable(snap.Budget),
		delinquencyTable(snap.Delinquency),
		payablesTable(snap.Payables),
		pricingTable(snap.Pricing),
	}
}

func reais(m core.Money) float64 {
	return m.Float()
}

// percent renders an undefined ratio as n/d.
func percent(r core.Ratio) any {
	if !r.Defined() {
		return core.FormatPercent(r)
	}
	return r.Float64()
}

func indent(name string, depth int) string {
	return strings.Repeat("  ", depth) + name
}

func periodHeader(first string, c core.Calendar, last ...string) []string {
	h := []string{first}
	for _, p := range c {
		h = append(h, p.Label())
	}
	return append(h, last...)
}

func dreTable(r services.IncomeStatementReport) Table {
	t := Table{Name: TabDRE, Header: periodHeader("Conta", r.Calendar, "AV %", "AH %")}
	for _, row := range r.Rows {
		cells := []any{indent(row.Name, row.Depth)}
		for _, p := range r.Calendar {
			cells = append(cells, reais(row.Values.At(p)))
		}
		cells = append(cells, percent(row.Vertical), percent(row.Horizontal))
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func dfcTable(r services.CashFlowReport) Table {
	t := Table{Name: TabDFC, Header: periodHeader("Conta", r.Calendar)}
	series := func(name string, v func(core.Period) core.Money) {
		cells := []any{name}
		for _, p := range r.Calendar {
			cells = append(cells, reais(v(p)))
		}
		t.Rows = append(t.Rows, cells)
	}
	for _, g := range r.Groups {
		series(g.Name, g.Totals.At)
		for _, row := range g.Rows {
			series(indent(row.Name, row.Depth+1), row.Values.At)
		}
	}
	series("Variação Líquida", r.NetChange.At)

	opening := make(core.Values, len(r.Balances))
	ending := make(core.Values, len(r.Balances))
	for _, b := range r.Balances {
		opening[b.Period] = b.Opening
		ending[b.Period] = b.Ending
	}
	series("Saldo Inicial", opening.At)
	series("Saldo Final", ending.At)
	return t
}

func budgetTable(r services.BudgetReport) Table {
	t := Table{Name: TabBudget, Header: []string{"Categoria", "Orçado", "Realizado", "Variação", "Variação %", "Execução %", "Status"}}
	line := func(l services.BudgetLineReport) []any {
		return []any{l.Name, reais(l.Planned), reais(l.Actual), reais(l.Variance), percent(l.VariancePercent), percent(l.ExecutionPercent), string(l.Status)}
	}
	for _, l := range r.Lines {
		t.Rows = append(t.Rows, line(l))
	}
	t.Rows = append(t.Rows, line(r.Total))
	return t
}

func delinquencyTable(r services.DelinquencyReport) Table {
	t := Table{Name: TabDelinquency, Header: []string{"Cliente", "Documento", "Valor", "Dias em Atraso", "Faixa", "Status"}}
	for _, rec := range r.Records {
		t.Rows = append(t.Rows, []any{rec.Name, rec.Document, reais(rec.TotalDue), rec.DaysOverdue, string(rec.Bucket), string(rec.Status)})
	}
	t.Rows = append(t.Rows, []any{"Total", "", reais(r.Summary.Total), r.Summary.AverageDays, "", ""})
	return t
}

func payablesTable(r services.PayablesReport) Table {
	t := Table{Name: TabPayables, Header: []string{"Fornecedor", "Documento", "Valor", "Dias para Vencimento", "Faixa", "Status"}}
	for _, rec := range r.Records {
		t.Rows = append(t.Rows, []any{rec.Name, rec.Document, reais(rec.TotalAmount), rec.DaysUntilDue, string(rec.Bucket), string(rec.Status)})
	}
	t.Rows = append(t.Rows, []any{"Total", "", reais(r.Summary.Total), r.Summary.AverageDays, "", ""})
	return t
}

func pricingTable(r services.PricingReport) Table {
	t := Table{Name: TabPricing, Header: []string{"Produto", "Custo Fixo", "Custo Variável", "CMV", "Preço", "Margem Bruta %", "Margem Líquida %", "Status"}}
	for _, p := range r.Products {
		t.Rows = append(t.Rows, []any{p.Name, reais(p.FixedCost), reais(p.VariableCost), reais(p.CMV), reais(p.Price), percent(p.GrossMargin), percent(p.NetMargin), string(p.Status)})
	}
	t.Rows = append(t.Rows, []any{"Média", "", "", "", "", percent(r.AverageGrossMargin), percent(r.AverageNetMargin), ""})
	return t
}
