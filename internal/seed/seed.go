// Package seed holds the demonstration dataset loaded by the memory backend and
// written to a fresh SQLite database.
package seed

import (
	"strconv"

	"financeiro/internal/core"
)

// Dataset is everything a backend serves.
type Dataset struct {
	DRE          core.Statement
	CashFlow     core.CashFlow
	Budget       []core.BudgetLine
	BudgetMonths []core.BudgetMonth
	Receivables  []core.Receivable
	Payables     []core.Payable
	Products     []core.Product

	IncomeTypes    []core.EntryType
	ExpenseTypes   []core.EntryType
	Clients        []core.Counterparty
	Suppliers      []core.Counterparty
	Projects       []core.Project
	PaymentMethods []core.PaymentMethod

	Entries []core.Entry
	Goals   []core.Goal
}

// Calendar is the reporting window of the statements.
var Calendar = core.MonthRange("2024-01", 6)

// Default returns a fresh copy of the dataset.
func Default() Dataset {
	dre := incomeStatement()
	return Dataset{
		DRE:            dre,
		CashFlow:       cashFlow(dre),
		Budget:         budget(),
		BudgetMonths:   budgetMonths(),
		Receivables:    receivables(),
		Payables:       payables(),
		Products:       products(),
		IncomeTypes:    incomeTypes(),
		ExpenseTypes:   expenseTypes(),
		Clients:        clients(),
		Suppliers:      suppliers(),
		Projects:       projects(),
		PaymentMethods: paymentMethods(),
		Entries:        entries(),
		Goals:          goals(),
	}
}

// series maps whole-real amounts onto Calendar in order.
func series(amounts ...int64) core.Values {
	v := make(core.Values, len(amounts))
	for i, a := range amounts {
		v[Calendar[i]] = core.Reais(a)
	}
	return v
}

func flat(amount int64) core.Values {
	return series(amount, amount, amount, amount, amount, amount)
}

func leaf(id, name string, kind core.Kind, sign core.Sign, v core.Values) core.LineItem {
	return core.LineItem{ID: id, Name: name, Kind: kind, Sign: sign, Values: v}
}

func node(id, name string, sign core.Sign, children ...core.LineItem) core.LineItem {
	return core.LineItem{ID: id, Name: name, Kind: core.KindCategory, Sign: sign, Children: children}
}

func subtotal(id, name string) core.LineItem {
	return core.LineItem{ID: id, Name: name, Kind: core.KindSubtotal, Sign: core.SignAddition}
}

func client(id, name string, v core.Values) core.LineItem {
	return leaf(id, name, core.KindCounterparty, core.SignAddition, v)
}

func supplier(id, name string, v core.Values) core.LineItem {
	return leaf(id, name, core.KindCounterparty, core.SignSubtraction, v)
}

func incomeStatement() core.Statement {
	add, sub := core.SignAddition, core.SignSubtraction
	return core.Statement{
		ID:       "dre",
		Title:    "Demonstração do Resultado do Exercício",
		Calendar: Calendar,
		Lines: []core.LineItem{
			node("receita-bruta", "Receita Bruta", add,
				node("receitas-servicos", "Receitas de Serviços", add,
					node("servico-consultoria", "Consultoria", add,
						client("cliente-abc", "Cliente ABC", series(50000, 52000, 55000, 53000, 58000, 60000)),
						client("cliente-xyz", "Cliente XYZ", series(30000, 33000, 35000, 34000, 37000, 40000)),
					),
					node("servico-desenvolvimento", "Desenvolvimento", add,
						client("cliente-tech", "Cliente Tech", series(30000, 33000, 36000, 35000, 36000, 39000)),
						client("cliente-startup", "Cliente Startup", series(20000, 22000, 24000, 23000, 24000, 26000)),
					),
				),
				node("receitas-produtos", "Receitas de Produtos", add,
					node("produto-software", "Software", add,
						client("cliente-corp1", "Corporação 1", series(120000, 130000, 140000, 135000, 145000, 160000)),
						client("cliente-corp2", "Corporação 2", series(80000, 85000, 90000, 85000, 95000, 100000)),
					),
					node("produto-hardware", "Hardware", add,
						client("cliente-retail", "Varejo", series(70000, 75000, 80000, 75000, 85000, 90000)),
						client("cliente-ecommerce", "E-commerce", series(50000, 55000, 60000, 55000, 60000, 65000)),
					),
				),
			),
			node("deducoes", "Deduções", sub,
				leaf("impostos-vendas", "Impostos sobre Vendas", core.KindDetail, sub, series(-54000, -58200, -62400, -59400, -64800, -69600)),
				leaf("devolucoes", "Devoluções", core.KindDetail, sub, series(-13500, -14550, -15600, -14850, -16200, -17400)),
			),
			subtotal("receita-liquida", "Receita Líquida"),
			leaf("cmv", "CMV", core.KindDetail, sub, series(-191250, -206125, -221000, -210375, -229500, -246500)),
			subtotal("lucro-bruto", "Lucro Bruto"),
			node("despesas-operacionais", "Despesas Operacionais", sub,
				node("despesas-administrativas", "Despesas Administrativas", sub,
					node("salarios-admin", "Salários Administrativos", sub,
						supplier("fornecedor-rh", "Folha RH", flat(-35000)),
					),
					node("aluguel", "Aluguel", sub,
						supplier("fornecedor-imobiliaria", "Imobiliária", flat(-15000)),
					),
					node("utilidades", "Utilidades", sub,
						supplier("energia", "Energia", series(-4000, -6000, -8000, -7000, -9000, -11000)),
						supplier("agua", "Água", series(-2000, -3000, -4500, -4000, -5500, -7000)),
						supplier("internet", "Internet", series(-1375, -2838, -3800, -2113, -4350, -5950)),
					),
				),
				node("despesas-vendas", "Despesas com Vendas", sub,
					node("comissoes", "Comissões", sub,
						supplier("vendedor1", "Vendedor 1", series(-12000, -13000, -14000, -13500, -15000, -16000)),
						supplier("vendedor2", "Vendedor 2", series(-8000, -9000, -10000, -9000, -10000, -11000)),
					),
					node("publicidade", "Publicidade", sub,
						supplier("agencia", "Agência", series(-10000, -10500, -11000, -10750, -11500, -12500)),
						supplier("midia", "Mídia", series(-8250, -8725, -9200, -8825, -9400, -9800)),
					),
				),
				node("despesas-financeiras", "Despesas Financeiras", sub,
					node("juros-emprestimos", "Juros de Empréstimos", sub,
						supplier("banco1", "Banco 1", series(-12000, -13000, -14000, -13500, -14500, -15500)),
					),
					node("tarifas-bancarias", "Tarifas Bancárias", sub,
						supplier("banco2", "Banco 2", series(-7125, -7612, -8100, -7537, -8450, -9150)),
					),
				),
			),
			subtotal("lucro-operacional", "Lucro Operacional"),
			leaf("resultado-financeiro", "Resultado Financeiro", core.KindDetail, sub, series(-7650, -8245, -8840, -8415, -9180, -9860)),
			subtotal("lucro-antes-ir", "Lucro Antes do IR"),
			leaf("ir-csll", "IR/CSLL", core.KindDetail, sub, series(-23409, -25230, -27050, -25750, -28091, -30172)),
			subtotal("lucro-liquido", "Lucro Líquido"),
		},
	}
}

// cashFlow builds the DFC. Net income is read from the resolved DRE so both
// statements stay consistent.
func cashFlow(dre core.Statement) core.CashFlow {
	add, sub := core.SignAddition, core.SignSubtraction
	netIncome, _ := dre.Line("lucro-liquido")
	return core.CashFlow{
		Calendar: Calendar,
		Groups: []core.CashFlowGroup{
			{ID: core.GroupOperating, Name: "Atividades Operacionais", Lines: []core.LineItem{
				leaf("lucro-liquido-dfc", "Lucro Líquido", core.KindDetail, add, netIncome.Values),
				leaf("depreciacao", "Depreciação", core.KindDetail, add, flat(12000)),
				leaf("var-clientes", "Variação de Clientes", core.KindDetail, add, series(-15000, -8000, -12000, 5000, -18000, -10000)),
				leaf("var-estoques", "Variação de Estoques", core.KindDetail, add, series(-8000, -5000, -10000, 3000, -7000, -12000)),
				leaf("var-fornecedores", "Variação de Fornecedores", core.KindDetail, add, series(10000, 7000, 15000, -2000, 12000, 8000)),
			}},
			{ID: core.GroupInvesting, Name: "Atividades de Investimento", Lines: []core.LineItem{
				leaf("aquisicao-imob", "Aquisição de Imobilizado", core.KindDetail, sub, series(-25000, -15000, -30000, -20000, -35000, -40000)),
				leaf("venda-ativos", "Venda de Ativos", core.KindDetail, add, series(0, 5000, 0, 0, 10000, 0)),
				leaf("aplicacoes", "Aplicações Financeiras", core.KindDetail, sub, series(-10000, -5000, -15000, -10000, -20000, -15000)),
			}},
			{ID: core.GroupFinancing, Name: "Atividades de Financiamento", Lines: []core.LineItem{
				leaf("emprestimos", "Empréstimos", core.KindDetail, add, series(-5000, -5000, 20000, -8000, -5000, 15000)),
				leaf("dividendos", "Dividendos", core.KindDetail, sub, flat(-15000)),
				leaf("aporte-capital", "Aporte de Capital", core.KindDetail, add, series(0, 0, 0, 0, 50000, 0)),
			}},
		},
		Opening: series(150000, 139441, 159416, 176926, 190911, 228440),
	}
}

func budget() []core.BudgetLine {
	line := func(id, name string, planned, actual int64) core.BudgetLine {
		return core.BudgetLine{ID: id, Name: name, Planned: core.Reais(planned), Actual: core.Reais(actual)}
	}
	return []core.BudgetLine{
		line("receita-orcada", "Receita Bruta", 3100000, 3070000),
		line("cmv-orcado", "CMV", 1550000, 1504750),
		line("despesas-admin", "Despesas Administrativas", 400000, 391426),
		line("despesas-venda", "Despesas com Vendas", 260000, 260950),
		line("despesas-fin", "Despesas Financeiras", 130000, 130474),
		line("marketing", "Marketing", 80000, 92000),
		line("ti", "Tecnologia", 60000, 55000),
		line("rh", "Recursos Humanos", 45000, 48500),
	}
}

func budgetMonths() []core.BudgetMonth {
	planned := []int64{450000, 480000, 510000, 520000, 550000, 590000}
	actual := []int64{450000, 485000, 520000, 495000, 540000, 580000}
	out := make([]core.BudgetMonth, len(Calendar))
	for i, p := range Calendar {
		out[i] = core.BudgetMonth{Period: p, Planned: core.Reais(planned[i]), Actual: core.Reais(actual[i])}
	}
	return out
}

func receivables() []core.Receivable {
	r := func(id, name, doc string, due int64, days int) core.Receivable {
		return core.Receivable{ID: id, Name: name, Document: doc, TotalDue: core.Reais(due), DaysOverdue: days}
	}
	return []core.Receivable{
		r("1", "Tech Solutions Ltda", "12.345.678/0001-90", 45000, 45),
		r("2", "Comercial ABC S.A.", "23.456.789/0001-01", 38000, 38),
		r("3", "Indústria XYZ Ltda", "34.567.890/0001-12", 32000, 30),
		r("4", "Serviços Beta ME", "45.678.901/0001-23", 28000, 28),
		r("5", "Construtora Delta", "56.789.012/0001-34", 25000, 22),
		r("6", "Distribuidora Omega", "67.890.123/0001-45", 22000, 18),
		r("7", "Consultoria Gama", "78.901.234/0001-56", 18000, 15),
		r("8", "Loja Central", "89.012.345/0001-67", 15000, 12),
	}
}

func payables() []core.Payable {
	p := func(id, name, doc string, amount int64, days int) core.Payable {
		return core.Payable{ID: id, Name: name, Document: doc, TotalAmount: core.Reais(amount), DaysUntilDue: days}
	}
	return []core.Payable{
		p("1", "Fornecedor Premium Ltda", "11.111.111/0001-11", 52000, -15),
		p("2", "Materiais ABC S.A.", "22.222.222/0001-22", 48000, -8),
		p("3", "Insumos Industriais Ltda", "33.333.333/0001-33", 42000, 3),
		p("4", "Distribuidor Beta ME", "44.444.444/0001-44", 38000, 8),
		p("5", "Peças Técnicas Omega", "55.555.555/0001-55", 35000, 12),
		p("6", "Serviços Logísticos Gama", "66.666.666/0001-66", 30000, 18),
		p("7", "Fornecedor Delta Ltda", "77.777.777/0001-77", 25000, 22),
		p("8", "Supplier Iota Comércio", "88.888.888/0001-88", 15000, 28),
	}
}

func products() []core.Product {
	p := func(id, name string, fixed, variable, price int64) core.Product {
		return core.Product{
			ID:           id,
			Name:         name,
			FixedCost:    core.Money{Cents: fixed},
			VariableCost: core.Money{Cents: variable},
			Price:        core.Money{Cents: price},
		}
	}
	return []core.Product{
		p("1", "Produto A - Premium", 1500, 3500, 8990),
		p("2", "Produto B - Standard", 1200, 2800, 5990),
		p("3", "Produto C - Basic", 800, 2200, 3990),
		p("4", "Serviço X - Consultoria", 20000, 8000, 45000),
		p("5", "Serviço Y - Implementação", 50000, 35000, 120000),
		p("6", "Produto D - Econômico", 600, 1800, 2990),
	}
}

func entryType(flow core.Flow, id, name string, subs ...string) core.EntryType {
	t := core.EntryType{ID: id, Flow: flow, Name: name, Builtin: true}
	for i, s := range subs {
		t.Subcategories = append(t.Subcategories, core.Subcategory{ID: id + "-" + strconv.Itoa(i+1), Name: s})
	}
	return t
}

func incomeTypes() []core.EntryType {
	in := core.Income
	return []core.EntryType{
		entryType(in, "1", "Receita com Produtos", "Ventilador", "Ar-condicionado", "Notebook"),
		entryType(in, "2", "Receita com Serviços", "Serviço de Instalação", "Consultoria"),
		entryType(in, "3", "Receitas Financeiras", "Juros", "Rendimentos"),
		entryType(in, "4", "Outras Receitas", "Receitas Diversas"),
	}
}

func expenseTypes() []core.EntryType {
	ex := core.Expense
	return []core.EntryType{
		entryType(ex, "1", "Custos Variáveis", "Matéria-prima", "Embalagem", "Combustível de Produção"),
		entryType(ex, "2", "Despesas em Ocupação", "Aluguel", "Energia Elétrica", "Material de Limpeza"),
		entryType(ex, "3", "Despesas com Serviços", "Manutenção", "Limpeza"),
		entryType(ex, "4", "Despesas com Pessoal", "Salários", "Encargos Sociais"),
		entryType(ex, "5", "Deduções sobre Vendas", "Devoluções"),
		entryType(ex, "6", "Impostos Diretos", "ICMS", "IPI"),
		entryType(ex, "7", "Investimentos", "Equipamentos", "Infraestrutura"),
		entryType(ex, "8", "Despesas Financeiras", "Juros de Empréstimo", "Tarifas Bancárias"),
		entryType(ex, "9", "Outras Despesas", "Despesas Diversas"),
	}
}

func clients() []core.Counterparty {
	return []core.Counterparty{
		{ID: "c1", Role: core.RoleClient, Kind: core.PersonLegal, Name: "Cliente ABC", City: "São Paulo", State: "SP", Email: "contato@clienteabc.com"},
		{ID: "c2", Role: core.RoleClient, Kind: core.PersonNatural, Name: "Cliente XYZ", City: "Rio de Janeiro", State: "RJ", Email: "contato@clientexyz.com"},
	}
}

func suppliers() []core.Counterparty {
	return []core.Counterparty{
		{ID: "s1", Role: core.RoleSupplier, Kind: core.PersonLegal, Name: "Fornecedor 01", City: "São Paulo", State: "SP", Email: "contato@fornecedor01.com"},
		{ID: "s2", Role: core.RoleSupplier, Kind: core.PersonLegal, Name: "Fornecedor 02", City: "Belo Horizonte", State: "MG", Email: "contato@fornecedor02.com"},
	}
}

func projects() []core.Project {
	return []core.Project{
		{ID: "p1", Name: "Projeto A"},
		{ID: "p2", Name: "Projeto B", Consolidated: true},
	}
}

func paymentMethods() []core.PaymentMethod {
	return []core.PaymentMethod{
		{ID: "pm1", Name: "Boleto", Builtin: true},
		{ID: "pm2", Name: "Fatura", Builtin: true},
		{ID: "pm3", Name: "Pix", Builtin: true},
		{ID: "pm4", Name: "Transferência", Builtin: true},
	}
}

func entries() []core.Entry {
	e := func(id string, flow core.Flow, typeID, sub, desc string, amount int64, date core.Date, party string) core.Entry {
		return core.Entry{
			ID:             id,
			Flow:           flow,
			TypeID:         typeID,
			SubcategoryID:  sub,
			Description:    desc,
			Amount:         core.Reais(amount),
			Date:           date,
			CounterpartyID: party,
		}
	}
	in, ex := core.Income, core.Expense
	return []core.Entry{
		e("ir1", in, "1", "1-1", "Venda de Produto A", 5000, core.NewDate(2026, 1, 15), "c1"),
		e("ir2", in, "1", "1-2", "Venda de Produto B", 3500, core.NewDate(2026, 1, 18), "c2"),
		e("ir3", in, "2", "2-2", "Serviço de Consultoria", 8000, core.NewDate(2026, 1, 20), "c1"),
		e("ir4", in, "3", "3-1", "Juros Recebidos", 1200, core.NewDate(2026, 1, 25), ""),
		e("ed1", ex, "1", "1-1", "Compra de Matéria-prima", 12000, core.NewDate(2026, 1, 10), "s1"),
		e("ed2", ex, "4", "4-1", "Folha de Pagamento", 18500, core.NewDate(2026, 1, 5), ""),
		e("df1", in, "1", "1-1", "Venda de Ventilador", 5000, core.NewDate(2026, 2, 2), "c1"),
		e("df2", in, "2", "2-2", "Consultoria", 3500, core.NewDate(2026, 2, 2), "c2"),
		e("df3", in, "3", "3-1", "Juros", 250, core.NewDate(2026, 2, 2), ""),
		e("df4", ex, "1", "1-1", "Matéria Prima", 2500, core.NewDate(2026, 2, 2), "s1"),
		e("df5", ex, "2", "2-1", "Aluguel", 5000, core.NewDate(2026, 2, 2), "s2"),
	}
}

func goals() []core.Goal {
	g := func(id string, flow core.Flow, typeID string, amount int64) core.Goal {
		return core.Goal{ID: id, Period: "2026-01", Flow: flow, TypeID: typeID, Amount: core.Reais(amount)}
	}
	return []core.Goal{
		g("gi1", core.Income, "1", 20000),
		g("gi2", core.Income, "2", 15000),
		g("gi3", core.Income, "3", 5000),
		g("gi4", core.Income, "4", 3000),
		g("ge1", core.Expense, "1", 15000),
		g("ge4", core.Expense, "4", 20000),
	}
}
