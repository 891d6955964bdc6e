package ports

import (
	"context"

	"financeiro/internal/core"
)

// Ports for storage adapters.
type (
	// StatementReader serves the authored statement trees.
	StatementReader interface {
		IncomeStatement(ctx context.Context) (core.Statement, error)
		CashFlow(ctx context.Context) (core.CashFlow, error)
	}

	BudgetReader interface {
		BudgetLines(ctx context.Context) ([]core.BudgetLine, error)
		BudgetMonths(ctx context.Context) ([]core.BudgetMonth, error)
	}

	// AgingReader lists open receivables and payables.
	AgingReader interface {
		Receivables(ctx context.Context) ([]core.Receivable, error)
		Payables(ctx context.Context) ([]core.Payable, error)
	}

	ProductReader interface {
		Products(ctx context.Context) ([]core.Product, error)
	}

	// RegistryStore persists the master-data registries. Create fails with
	// core.ErrDuplicateID on an existing id, Update and Delete with
	// core.ErrNotFound on a missing one, and Delete refuses built-in rows with
	// core.ErrBuiltinEntry.
	RegistryStore interface {
		ListEntryTypes(ctx context.Context, flow core.Flow) ([]core.EntryType, error)
		CreateEntryType(ctx context.Context, t core.EntryType) error
		UpdateEntryType(ctx context.Context, t core.EntryType) error
		DeleteEntryType(ctx context.Context, flow core.Flow, id string) error

		ListCounterparties(ctx context.Context, role core.Role) ([]core.Counterparty, error)
		CreateCounterparty(ctx context.Context, c core.Counterparty) error
		UpdateCounterparty(ctx context.Context, c core.Counterparty) error
		DeleteCounterparty(ctx context.Context, role core.Role, id string) error

		ListProjects(ctx context.Context) ([]core.Project, error)
		CreateProject(ctx context.Context, p core.Project) error
		UpdateProject(ctx context.Context, p core.Project) error
		DeleteProject(ctx context.Context, id string) error

		ListPaymentMethods(ctx context.Context) ([]core.PaymentMethod, error)
		CreatePaymentMethod(ctx context.Context, m core.PaymentMethod) error
		UpdatePaymentMethod(ctx context.Context, m core.PaymentMethod) error
		DeletePaymentMethod(ctx context.Context, id string) error
	}

	// LedgerStore persists ledger entries and goals. Zero bounds are open.
	LedgerStore interface {
		ListEntries(ctx context.Context, from, to core.Date) ([]core.Entry, error)
		CreateEntry(ctx context.Context, e core.Entry) error
		DeleteEntry(ctx context.Context, id string) error

		ListGoals(ctx context.Context, flow core.Flow, from, to core.Period) ([]core.Goal, error)
		CreateGoal(ctx context.Context, g core.Goal) error
		DeleteGoal(ctx context.Context, id string) error
	}

	// HealthChecker reports whether the store can serve requests.
	HealthChecker interface {
		Ping(ctx context.Context) error
	}

	// ReportSource is everything the report service reads.
	ReportSource interface {
		StatementReader
		BudgetReader
		AgingReader
		ProductReader
	}
)
