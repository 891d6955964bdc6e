package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"financeiro/internal/core"
	"financeiro/internal/ports"
	"financeiro/internal/seed"

	_ "modernc.org/sqlite"
)

const (
	statementDRE = "dre"
	statementDFC = "dfc"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

var (
	_ ports.ReportSource  = (*SQLiteRepository)(nil)
	_ ports.RegistryStore = (*SQLiteRepository)(nil)
	_ ports.LedgerStore   = (*SQLiteRepository)(nil)
	_ ports.HealthChecker = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{
		db:      db,
		queries: New(db),
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping implements ports.HealthChecker
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) withTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(r.queries.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// SeedIfEmpty writes d into a fresh database. A database that already holds
// payment methods is left untouched.
func (r *SQLiteRepository) SeedIfEmpty(ctx context.Context, d seed.Dataset) (bool, error) {
	n, err := r.queries.CountPaymentMethods(ctx)
	if err != nil {
		return false, fmt.Errorf("count payment methods: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	err = r.withTx(ctx, func(q *Queries) error {
		return writeDataset(ctx, q, d)
	})
	if err != nil {
		return false, fmt.Errorf("seed database: %w", err)
	}
	slog.InfoContext(ctx, "Database seeded",
		"entries", len(d.Entries),
		"goals", len(d.Goals))
	return true, nil
}

func writeDataset(ctx context.Context, q *Queries, d seed.Dataset) error {
	if err := writeStatement(ctx, q, statementDRE, d.DRE.Title, d.DRE.Calendar, map[string][]core.LineItem{"": d.DRE.Lines}, []string{""}); err != nil {
		return fmt.Errorf("dre: %w", err)
	}

	groups := make(map[string][]core.LineItem, len(d.CashFlow.Groups))
	order := make([]string, 0, len(d.CashFlow.Groups))
	for i, g := range d.CashFlow.Groups {
		if err := q.InsertCashFlowGroup(ctx, NamedPosition{ID: g.ID, Name: g.Name, Position: int64(i)}); err != nil {
			return fmt.Errorf("cash flow group %s: %w", g.ID, err)
		}
		groups[g.ID] = g.Lines
		order = append(order, g.ID)
	}
	if err := writeStatement(ctx, q, statementDFC, "Demonstração do Fluxo de Caixa", d.CashFlow.Calendar, groups, order); err != nil {
		return fmt.Errorf("dfc: %w", err)
	}
	for _, p := range d.CashFlow.Opening.Periods() {
		if err := q.InsertOpeningBalance(ctx, PeriodAmount{Period: string(p), AmountCents: d.CashFlow.Opening.At(p).Cents}); err != nil {
			return fmt.Errorf("opening balance %s: %w", p, err)
		}
	}

	for i, b := range d.Budget {
		if err := q.InsertBudgetLine(ctx, b.ID, b.Name, int64(i), b.Planned.Cents, b.Actual.Cents); err != nil {
			return fmt.Errorf("budget line %s: %w", b.ID, err)
		}
	}
	for _, m := range d.BudgetMonths {
		if err := q.InsertBudgetMonth(ctx, string(m.Period), m.Planned.Cents, m.Actual.Cents); err != nil {
			return fmt.Errorf("budget month %s: %w", m.Period, err)
		}
	}
	for i, rc := range d.Receivables {
		if err := q.InsertReceivable(ctx, rc.ID, rc.Name, rc.Document, rc.TotalDue.Cents, rc.DaysOverdue, int64(i)); err != nil {
			return fmt.Errorf("receivable %s: %w", rc.ID, err)
		}
	}
	for i, p := range d.Payables {
		if err := q.InsertPayable(ctx, p.ID, p.Name, p.Document, p.TotalAmount.Cents, p.DaysUntilDue, int64(i)); err != nil {
			return fmt.Errorf("payable %s: %w", p.ID, err)
		}
	}
	for i, p := range d.Products {
		if err := q.InsertProduct(ctx, p.ID, p.Name, p.FixedCost.Cents, p.VariableCost.Cents, p.Price.Cents, int64(i)); err != nil {
			return fmt.Errorf("product %s: %w", p.ID, err)
		}
	}

	for _, t := range append(append([]core.EntryType(nil), d.IncomeTypes...), d.ExpenseTypes...) {
		if err := insertEntryType(ctx, q, t); err != nil {
			return err
		}
	}
	for _, c := range append(append([]core.Counterparty(nil), d.Clients...), d.Suppliers...) {
		if err := q.CreateCounterparty(ctx, counterpartyRow(c)); err != nil {
			return fmt.Errorf("counterparty %s: %w", c.ID, err)
		}
	}
	for _, p := range d.Projects {
		if err := q.CreateProject(ctx, p.ID, p.Name, p.Consolidated); err != nil {
			return fmt.Errorf("project %s: %w", p.ID, err)
		}
	}
	for _, m := range d.PaymentMethods {
		if err := q.CreatePaymentMethod(ctx, m.ID, m.Name, m.Builtin); err != nil {
			return fmt.Errorf("payment method %s: %w", m.ID, err)
		}
	}
	for _, e := range d.Entries {
		if err := q.CreateEntry(ctx, entryRow(e)); err != nil {
			return fmt.Errorf("entry %s: %w", e.ID, err)
		}
	}
	for _, g := range d.Goals {
		if err := q.CreateGoal(ctx, goalRow(g)); err != nil {
			return fmt.Errorf("goal %s: %w", g.ID, err)
		}
	}
	return nil
}

// writeStatement stores the trees of every group in preorder.
func writeStatement(ctx context.Context, q *Queries, id, title string, cal core.Calendar, groups map[string][]core.LineItem, order []string) error {
	if err := q.UpsertStatement(ctx, id, title); err != nil {
		return err
	}
	for _, p := range cal {
		if err := q.InsertStatementPeriod(ctx, id, string(p)); err != nil {
			return err
		}
	}
	var pos int64
	var write func(n core.LineItem, parent, group string) error
	write = func(n core.LineItem, parent, group string) error {
		err := q.InsertStatementLine(ctx, StatementLine{
			Statement: id,
			ID:        n.ID,
			ParentID:  nullString(parent),
			GroupID:   nullString(group),
			Position:  pos,
			Name:      n.Name,
			Kind:      string(n.Kind),
			Sign:      string(n.Sign),
		})
		if err != nil {
			return fmt.Errorf("line %s: %w", n.ID, err)
		}
		pos++
		if n.IsLeaf() {
			for _, p := range n.Values.Periods() {
				if err := q.InsertLineValue(ctx, id, LineValue{LineID: n.ID, Period: string(p), AmountCents: n.Values.At(p).Cents}); err != nil {
					return fmt.Errorf("value %s %s: %w", n.ID, p, err)
				}
			}
		}
		for _, c := range n.Children {
			if err := write(c, n.ID, group); err != nil {
				return err
			}
		}
		return nil
	}
	for _, g := range order {
		for _, line := range groups[g] {
			if err := write(line, "", g); err != nil {
				return err
			}
		}
	}
	return nil
}

// readStatement rebuilds the trees of a statement keyed by group id.
func (r *SQLiteRepository) readStatement(ctx context.Context, id string) (core.Calendar, map[string][]core.LineItem, error) {
	periods, err := r.queries.ListStatementPeriods(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list periods: %w", err)
	}
	cal := make(core.Calendar, len(periods))
	for i, p := range periods {
		cal[i] = core.Period(p)
	}

	lines, err := r.queries.ListStatementLines(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list lines: %w", err)
	}
	values, err := r.queries.ListLineValues(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list values: %w", err)
	}
	byLine := map[string]core.Values{}
	for _, v := range values {
		if byLine[v.LineID] == nil {
			byLine[v.LineID] = core.Values{}
		}
		byLine[v.LineID][core.Period(v.Period)] = core.Money{Cents: v.AmountCents}
	}

	children := map[string][]StatementLine{}
	for _, l := range lines {
		children[l.ParentID.String] = append(children[l.ParentID.String], l)
	}
	var build func(l StatementLine) core.LineItem
	build = func(l StatementLine) core.LineItem {
		n := core.LineItem{
			ID:     l.ID,
			Name:   l.Name,
			Kind:   core.Kind(l.Kind),
			Sign:   core.Sign(l.Sign),
			Values: byLine[l.ID],
		}
		for _, c := range children[l.ID] {
			n.Children = append(n.Children, build(c))
		}
		return n
	}

	out := map[string][]core.LineItem{}
	for _, root := range children[""] {
		out[root.GroupID.String] = append(out[root.GroupID.String], build(root))
	}
	return cal, out, nil
}

// IncomeStatement implements ports.StatementReader
func (r *SQLiteRepository) IncomeStatement(ctx context.Context) (core.Statement, error) {
	title, err := r.queries.GetStatementTitle(ctx, statementDRE)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Statement{}, core.ErrNotFound
		}
		return core.Statement{}, fmt.Errorf("get statement: %w", err)
	}
	cal, groups, err := r.readStatement(ctx, statementDRE)
	if err != nil {
		return core.Statement{}, fmt.Errorf("read dre: %w", err)
	}
	return core.Statement{ID: statementDRE, Title: title, Calendar: cal, Lines: groups[""]}, nil
}

// CashFlow implements ports.StatementReader
func (r *SQLiteRepository) CashFlow(ctx context.Context) (core.CashFlow, error) {
	cal, lines, err := r.readStatement(ctx, statementDFC)
	if err != nil {
		return core.CashFlow{}, fmt.Errorf("read dfc: %w", err)
	}
	groups, err := r.queries.ListCashFlowGroups(ctx)
	if err != nil {
		return core.CashFlow{}, fmt.Errorf("list cash flow groups: %w", err)
	}
	openings, err := r.queries.ListOpeningBalances(ctx)
	if err != nil {
		return core.CashFlow{}, fmt.Errorf("list opening balances: %w", err)
	}
	cf := core.CashFlow{Calendar: cal, Opening: core.Values{}}
	for _, g := range groups {
		cf.Groups = append(cf.Groups, core.CashFlowGroup{ID: g.ID, Name: g.Name, Lines: lines[g.ID]})
	}
	for _, o := range openings {
		cf.Opening[core.Period(o.Period)] = core.Money{Cents: o.AmountCents}
	}
	return cf, nil
}

// collect scans every row with scan.
func collect[T any](rows *sql.Rows, err error, scan func(*sql.Rows) (T, error)) ([]T, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// BudgetLines implements ports.BudgetReader
func (r *SQLiteRepository) BudgetLines(ctx context.Context) ([]core.BudgetLine, error) {
	rows, err := r.queries.ListBudgetLines(ctx)
	lines, err := collect(rows, err, func(rs *sql.Rows) (core.BudgetLine, error) {
		var b core.BudgetLine
		err := rs.Scan(&b.ID, &b.Name, &b.Planned.Cents, &b.Actual.Cents)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("list budget lines: %w", err)
	}
	return lines, nil
}

// BudgetMonths implements ports.BudgetReader
func (r *SQLiteRepository) BudgetMonths(ctx context.Context) ([]core.BudgetMonth, error) {
	rows, err := r.queries.ListBudgetMonths(ctx)
	months, err := collect(rows, err, func(rs *sql.Rows) (core.BudgetMonth, error) {
		var m core.BudgetMonth
		err := rs.Scan(&m.Period, &m.Planned.Cents, &m.Actual.Cents)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("list budget months: %w", err)
	}
	return months, nil
}

// Receivables implements ports.AgingReader
func (r *SQLiteRepository) Receivables(ctx context.Context) ([]core.Receivable, error) {
	rows, err := r.queries.ListReceivables(ctx)
	items, err := collect(rows, err, func(rs *sql.Rows) (core.Receivable, error) {
		var rc core.Receivable
		err := rs.Scan(&rc.ID, &rc.Name, &rc.Document, &rc.TotalDue.Cents, &rc.DaysOverdue)
		return rc, err
	})
	if err != nil {
		return nil, fmt.Errorf("list receivables: %w", err)
	}
	return items, nil
}

// Payables implements ports.AgingReader
func (r *SQLiteRepository) Payables(ctx context.Context) ([]core.Payable, error) {
	rows, err := r.queries.ListPayables(ctx)
	items, err := collect(rows, err, func(rs *sql.Rows) (core.Payable, error) {
		var p core.Payable
		err := rs.Scan(&p.ID, &p.Name, &p.Document, &p.TotalAmount.Cents, &p.DaysUntilDue)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("list payables: %w", err)
	}
	return items, nil
}

// Products implements ports.ProductReader
func (r *SQLiteRepository) Products(ctx context.Context) ([]core.Product, error) {
	rows, err := r.queries.ListProducts(ctx)
	items, err := collect(rows, err, func(rs *sql.Rows) (core.Product, error) {
		var p core.Product
		err := rs.Scan(&p.ID, &p.Name, &p.FixedCost.Cents, &p.VariableCost.Cents, &p.Price.Cents)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

// mapError translates constraint failures into core errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, core.ErrBuiltinEntry.Error()):
		return core.ErrBuiltinEntry
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return core.ErrDuplicateID
	}
	return err
}

func mustAffect(n int64, err error) error {
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func insertEntryType(ctx context.Context, q *Queries, t core.EntryType) error {
	err := q.CreateEntryType(ctx, EntryTypeRow{Flow: string(t.Flow), ID: t.ID, Name: t.Name, IsDefault: t.Builtin})
	if err != nil {
		return fmt.Errorf("entry type %s: %w", t.ID, mapError(err))
	}
	return insertSubcategories(ctx, q, t)
}

func insertSubcategories(ctx context.Context, q *Queries, t core.EntryType) error {
	for i, s := range t.Subcategories {
		if err := q.InsertSubcategory(ctx, string(t.Flow), t.ID, s.ID, s.Name, int64(i)); err != nil {
			return fmt.Errorf("subcategory %s: %w", s.ID, mapError(err))
		}
	}
	return nil
}

// ListEntryTypes implements ports.RegistryStore
func (r *SQLiteRepository) ListEntryTypes(ctx context.Context, flow core.Flow) ([]core.EntryType, error) {
	if !flow.IsValid() {
		return nil, core.ErrInvalidFlow
	}
	rows, err := r.queries.ListEntryTypes(ctx, string(flow))
	if err != nil {
		return nil, fmt.Errorf("list entry types: %w", err)
	}
	subs, err := r.queries.ListSubcategories(ctx, string(flow))
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	byType := map[string][]core.Subcategory{}
	for _, s := range subs {
		byType[s.TypeID] = append(byType[s.TypeID], core.Subcategory{ID: s.ID, Name: s.Name})
	}
	out := make([]core.EntryType, len(rows))
	for i, row := range rows {
		out[i] = core.EntryType{
			ID:            row.ID,
			Flow:          core.Flow(row.Flow),
			Name:          row.Name,
			Builtin:       row.IsDefault,
			Subcategories: byType[row.ID],
		}
	}
	return out, nil
}

// CreateEntryType implements ports.RegistryStore
func (r *SQLiteRepository) CreateEntryType(ctx context.Context, t core.EntryType) error {
	return r.withTx(ctx, func(q *Queries) error {
		return insertEntryType(ctx, q, t)
	})
}

// UpdateEntryType replaces the name and the subcategory list.
func (r *SQLiteRepository) UpdateEntryType(ctx context.Context, t core.EntryType) error {
	return r.withTx(ctx, func(q *Queries) error {
		if err := mustAffect(q.UpdateEntryType(ctx, EntryTypeRow{Flow: string(t.Flow), ID: t.ID, Name: t.Name})); err != nil {
			return err
		}
		if err := q.DeleteSubcategories(ctx, string(t.Flow), t.ID); err != nil {
			return fmt.Errorf("delete subcategories: %w", err)
		}
		return insertSubcategories(ctx, q, t)
	})
}

// DeleteEntryType implements ports.RegistryStore
func (r *SQLiteRepository) DeleteEntryType(ctx context.Context, flow core.Flow, id string) error {
	return r.withTx(ctx, func(q *Queries) error {
		if err := mustAffect(q.DeleteEntryType(ctx, string(flow), id)); err != nil {
			return err
		}
		return q.DeleteSubcategories(ctx, string(flow), id)
	})
}

func counterpartyRow(c core.Counterparty) CounterpartyRow {
	return CounterpartyRow{
		ID:          c.ID,
		Role:        string(c.Role),
		Kind:        string(c.Kind),
		Name:        c.Name,
		Document:    c.Document,
		Address:     c.Address,
		City:        c.City,
		State:       c.State,
		Phone:       c.Phone,
		Email:       c.Email,
		ContactName: c.ContactName,
	}
}

// ListCounterparties implements ports.RegistryStore
func (r *SQLiteRepository) ListCounterparties(ctx context.Context, role core.Role) ([]core.Counterparty, error) {
	if !role.IsValid() {
		return nil, core.ErrInvalidRole
	}
	rows, err := r.queries.ListCounterparties(ctx, string(role))
	if err != nil {
		return nil, fmt.Errorf("list counterparties: %w", err)
	}
	out := make([]core.Counterparty, len(rows))
	for i, row := range rows {
		out[i] = core.Counterparty{
			ID:          row.ID,
			Role:        core.Role(row.Role),
			Kind:        core.PersonKind(row.Kind),
			Name:        row.Name,
			Document:    row.Document,
			Address:     row.Address,
			City:        row.City,
			State:       row.State,
			Phone:       row.Phone,
			Email:       row.Email,
			ContactName: row.ContactName,
		}
	}
	return out, nil
}

// CreateCounterparty implements ports.RegistryStore
func (r *SQLiteRepository) CreateCounterparty(ctx context.Context, c core.Counterparty) error {
	return mapError(r.queries.CreateCounterparty(ctx, counterpartyRow(c)))
}

// UpdateCounterparty implements ports.RegistryStore
func (r *SQLiteRepository) UpdateCounterparty(ctx context.Context, c core.Counterparty) error {
	return mustAffect(r.queries.UpdateCounterparty(ctx, counterpartyRow(c)))
}

// DeleteCounterparty implements ports.RegistryStore
func (r *SQLiteRepository) DeleteCounterparty(ctx context.Context, role core.Role, id string) error {
	return mustAffect(r.queries.DeleteCounterparty(ctx, string(role), id))
}

// ListProjects implements ports.RegistryStore
func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]core.Project, error) {
	rows, err := r.queries.ListProjects(ctx)
	items, err := collect(rows, err, func(rs *sql.Rows) (core.Project, error) {
		var p core.Project
		err := rs.Scan(&p.ID, &p.Name, &p.Consolidated)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return items, nil
}

// CreateProject implements ports.RegistryStore
func (r *SQLiteRepository) CreateProject(ctx context.Context, p core.Project) error {
	return mapError(r.queries.CreateProject(ctx, p.ID, p.Name, p.Consolidated))
}

// UpdateProject implements ports.RegistryStore
func (r *SQLiteRepository) UpdateProject(ctx context.Context, p core.Project) error {
	return mustAffect(r.queries.UpdateProject(ctx, p.ID, p.Name, p.Consolidated))
}

// DeleteProject implements ports.RegistryStore
func (r *SQLiteRepository) DeleteProject(ctx context.Context, id string) error {
	return mustAffect(r.queries.DeleteProject(ctx, id))
}

// ListPaymentMethods implements ports.RegistryStore
func (r *SQLiteRepository) ListPaymentMethods(ctx context.Context) ([]core.PaymentMethod, error) {
	rows, err := r.queries.ListPaymentMethods(ctx)
	items, err := collect(rows, err, func(rs *sql.Rows) (core.PaymentMethod, error) {
		var m core.PaymentMethod
		err := rs.Scan(&m.ID, &m.Name, &m.Builtin)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return items, nil
}

// CreatePaymentMethod implements ports.RegistryStore
func (r *SQLiteRepository) CreatePaymentMethod(ctx context.Context, m core.PaymentMethod) error {
	return mapError(r.queries.CreatePaymentMethod(ctx, m.ID, m.Name, m.Builtin))
}

// UpdatePaymentMethod implements ports.RegistryStore
func (r *SQLiteRepository) UpdatePaymentMethod(ctx context.Context, m core.PaymentMethod) error {
	return mustAffect(r.queries.UpdatePaymentMethod(ctx, m.ID, m.Name))
}

// DeletePaymentMethod refuses built-in methods through the schema trigger.
func (r *SQLiteRepository) DeletePaymentMethod(ctx context.Context, id string) error {
	return mustAffect(r.queries.DeletePaymentMethod(ctx, id))
}

func entryRow(e core.Entry) EntryRow {
	return EntryRow{
		ID:              e.ID,
		Flow:            string(e.Flow),
		TypeID:          e.TypeID,
		SubcategoryID:   e.SubcategoryID,
		Description:     e.Description,
		AmountCents:     e.Amount.Cents,
		EntryDate:       e.Date.String(),
		CounterpartyID:  e.CounterpartyID,
		ProjectID:       e.ProjectID,
		PaymentMethodID: e.PaymentMethodID,
	}
}

func goalRow(g core.Goal) GoalRow {
	return GoalRow{ID: g.ID, Period: string(g.Period), Flow: string(g.Flow), TypeID: g.TypeID, AmountCents: g.Amount.Cents}
}

func dateBound(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// ListEntries implements ports.LedgerStore
func (r *SQLiteRepository) ListEntries(ctx context.Context, from, to core.Date) ([]core.Entry, error) {
	rows, err := r.queries.ListEntries(ctx, dateBound(from), dateBound(to))
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	out := make([]core.Entry, 0, len(rows))
	for _, row := range rows {
		date, err := core.ParseDate(row.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", row.ID, err)
		}
		out = append(out, core.Entry{
			ID:              row.ID,
			Flow:            core.Flow(row.Flow),
			TypeID:          row.TypeID,
			SubcategoryID:   row.SubcategoryID,
			Description:     row.Description,
			Amount:          core.Money{Cents: row.AmountCents},
			Date:            date,
			CounterpartyID:  row.CounterpartyID,
			ProjectID:       row.ProjectID,
			PaymentMethodID: row.PaymentMethodID,
		})
	}
	return out, nil
}

// CreateEntry implements ports.LedgerStore
func (r *SQLiteRepository) CreateEntry(ctx context.Context, e core.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := r.queries.CreateEntry(ctx, entryRow(e)); err != nil {
		return mapError(err)
	}
	slog.InfoContext(ctx, "Entry saved to SQLite",
		"id", e.ID,
		"flow", e.Flow,
		"amount_cents", e.Amount.Cents,
		"date", e.Date.String())
	return nil
}

// DeleteEntry implements ports.LedgerStore
func (r *SQLiteRepository) DeleteEntry(ctx context.Context, id string) error {
	return mustAffect(r.queries.DeleteEntry(ctx, id))
}

// ListGoals implements ports.LedgerStore
func (r *SQLiteRepository) ListGoals(ctx context.Context, flow core.Flow, from, to core.Period) ([]core.Goal, error) {
	rows, err := r.queries.ListGoals(ctx, string(flow), string(from), string(to))
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	out := make([]core.Goal, len(rows))
	for i, row := range rows {
		out[i] = core.Goal{
			ID:     row.ID,
			Period: core.Period(row.Period),
			Flow:   core.Flow(row.Flow),
			TypeID: row.TypeID,
			Amount: core.Money{Cents: row.AmountCents},
		}
	}
	return out, nil
}

// CreateGoal implements ports.LedgerStore
func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	return mapError(r.queries.CreateGoal(ctx, goalRow(g)))
}

// DeleteGoal implements ports.LedgerStore
func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id string) error {
	return mustAffect(r.queries.DeleteGoal(ctx, id))
}
