package storage

import (
	"context"
	"database/sql"
)

type StatementLine struct {
	Statement string
	ID        string
	ParentID  sql.NullString
	GroupID   sql.NullString
	Position  int64
	Name      string
	Kind      string
	Sign      string
}

type LineValue struct {
	LineID      string
	Period      string
	AmountCents int64
}

type PeriodAmount struct {
	Period      string
	AmountCents int64
}

type NamedPosition struct {
	ID       string
	Name     string
	Position int64
}

type EntryTypeRow struct {
	Flow      string
	ID        string
	Name      string
	IsDefault bool
}

type SubcategoryRow struct {
	TypeID string
	ID     string
	Name   string
}

type EntryRow struct {
	ID              string
	Flow            string
	TypeID          string
	SubcategoryID   string
	Description     string
	AmountCents     int64
	EntryDate       string
	CounterpartyID  string
	ProjectID       string
	PaymentMethodID string
}

type CounterpartyRow struct {
	ID          string
	Role        string
	Kind        string
	Name        string
	Document    string
	Address     string
	City        string
	State       string
	Phone       string
	Email       string
	ContactName string
}

type GoalRow struct {
	ID          string
	Period      string
	Flow        string
	TypeID      string
	AmountCents int64
}

const upsertStatement = `INSERT INTO statements (id, title) VALUES (?, ?)
ON CONFLICT(id) DO UPDATE SET title = excluded.title`

func (q *Queries) UpsertStatement(ctx context.Context, id, title string) error {
	_, err := q.db.ExecContext(ctx, upsertStatement, id, title)
	return err
}

const getStatementTitle = `SELECT title FROM statements WHERE id = ?`

func (q *Queries) GetStatementTitle(ctx context.Context, id string) (string, error) {
	var title string
	err := q.db.QueryRowContext(ctx, getStatementTitle, id).Scan(&title)
	return title, err
}

const insertStatementPeriod = `INSERT INTO statement_periods (statement, period) VALUES (?, ?)`

func (q *Queries) InsertStatementPeriod(ctx context.Context, statement, period string) error {
	_, err := q.db.ExecContext(ctx, insertStatementPeriod, statement, period)
	return err
}

const listStatementPeriods = `SELECT period FROM statement_periods WHERE statement = ? ORDER BY period`

func (q *Queries) ListStatementPeriods(ctx context.Context, statement string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listStatementPeriods, statement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const insertStatementLine = `INSERT INTO statement_lines (statement, id, parent_id, group_id, position, name, kind, sign)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) InsertStatementLine(ctx context.Context, arg StatementLine) error {
	_, err := q.db.ExecContext(ctx, insertStatementLine,
		arg.Statement, arg.ID, arg.ParentID, arg.GroupID, arg.Position, arg.Name, arg.Kind, arg.Sign)
	return err
}

const listStatementLines = `SELECT statement, id, parent_id, group_id, position, name, kind, sign
FROM statement_lines WHERE statement = ? ORDER BY position`

func (q *Queries) ListStatementLines(ctx context.Context, statement string) ([]StatementLine, error) {
	rows, err := q.db.QueryContext(ctx, listStatementLines, statement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []StatementLine
	for rows.Next() {
		var i StatementLine
		if err := rows.Scan(&i.Statement, &i.ID, &i.ParentID, &i.GroupID, &i.Position, &i.Name, &i.Kind, &i.Sign); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertLineValue = `INSERT INTO line_values (statement, line_id, period, amount_cents) VALUES (?, ?, ?, ?)`

func (q *Queries) InsertLineValue(ctx context.Context, statement string, v LineValue) error {
	_, err := q.db.ExecContext(ctx, insertLineValue, statement, v.LineID, v.Period, v.AmountCents)
	return err
}

const listLineValues = `SELECT line_id, period, amount_cents FROM line_values WHERE statement = ?`

func (q *Queries) ListLineValues(ctx context.Context, statement string) ([]LineValue, error) {
	rows, err := q.db.QueryContext(ctx, listLineValues, statement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LineValue
	for rows.Next() {
		var i LineValue
		if err := rows.Scan(&i.LineID, &i.Period, &i.AmountCents); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertCashFlowGroup = `INSERT INTO cash_flow_groups (id, name, position) VALUES (?, ?, ?)`

func (q *Queries) InsertCashFlowGroup(ctx context.Context, arg NamedPosition) error {
	_, err := q.db.ExecContext(ctx, insertCashFlowGroup, arg.ID, arg.Name, arg.Position)
	return err
}

const listCashFlowGroups = `SELECT id, name, position FROM cash_flow_groups ORDER BY position`

func (q *Queries) ListCashFlowGroups(ctx context.Context) ([]NamedPosition, error) {
	rows, err := q.db.QueryContext(ctx, listCashFlowGroups)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []NamedPosition
	for rows.Next() {
		var i NamedPosition
		if err := rows.Scan(&i.ID, &i.Name, &i.Position); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertOpeningBalance = `INSERT INTO opening_balances (period, amount_cents) VALUES (?, ?)`

func (q *Queries) InsertOpeningBalance(ctx context.Context, arg PeriodAmount) error {
	_, err := q.db.ExecContext(ctx, insertOpeningBalance, arg.Period, arg.AmountCents)
	return err
}

const listOpeningBalances = `SELECT period, amount_cents FROM opening_balances ORDER BY period`

func (q *Queries) ListOpeningBalances(ctx context.Context) ([]PeriodAmount, error) {
	rows, err := q.db.QueryContext(ctx, listOpeningBalances)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PeriodAmount
	for rows.Next() {
		var i PeriodAmount
		if err := rows.Scan(&i.Period, &i.AmountCents); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertBudgetLine = `INSERT INTO budget_lines (id, name, position, planned_cents, actual_cents) VALUES (?, ?, ?, ?, ?)`

func (q *Queries) InsertBudgetLine(ctx context.Context, id, name string, position, planned, actual int64) error {
	_, err := q.db.ExecContext(ctx, insertBudgetLine, id, name, position, planned, actual)
	return err
}

const listBudgetLines = `SELECT id, name, planned_cents, actual_cents FROM budget_lines ORDER BY position`

func (q *Queries) ListBudgetLines(ctx context.Context) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, listBudgetLines)
}

const insertBudgetMonth = `INSERT INTO budget_months (period, planned_cents, actual_cents) VALUES (?, ?, ?)`

func (q *Queries) InsertBudgetMonth(ctx context.Context, period string, planned, actual int64) error {
	_, err := q.db.ExecContext(ctx, insertBudgetMonth, period, planned, actual)
	return err
}

const listBudgetMonths = `SELECT period, planned_cents, actual_cents FROM budget_months ORDER BY period`

func (q *Queries) ListBudgetMonths(ctx context.Context) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, listBudgetMonths)
}

const insertReceivable = `INSERT INTO receivables (id, name, document, total_due_cents, days_overdue, position)
VALUES (?, ?, ?, ?, ?, ?)`

func (q *Queries) InsertReceivable(ctx context.Context, id, name, document string, cents int64, days int, position int64) error {
	_, err := q.db.ExecContext(ctx, insertReceivable, id, name, document, cents, days, position)
	return err
}

const listReceivables = `SELECT id, name, document, total_due_cents, days_overdue FROM receivables ORDER BY position`

func (q *Queries) ListReceivables(ctx context.Context) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, listReceivables)
}

const insertPayable = `INSERT INTO payables (id, name, document, total_amount_cents, days_until_due, position)
VALUES (?, ?, ?, ?, ?, ?)`

func (q *Queries) InsertPayable(ctx context.Context, id, name, document string, cents int64, days int, position int64) error {
	_, err := q.db.ExecContext(ctx, insertPayable, id, name, document, cents, days, position)
	return err
}

const listPayables = `SELECT id, name, document, total_amount_cents, days_until_due FROM payables ORDER BY position`

func (q *Queries) ListPayables(ctx context.Context) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, listPayables)
}

const insertProduct = `INSERT INTO products (id, name, fixed_cost_cents, variable_cost_cents, price_cents, position)
VALUES (?, ?, ?, ?, ?, ?)`

func (q *Queries) InsertProduct(ctx context.Context, id, name string, fixed, variable, price, position int64) error {
	_, err := q.db.ExecContext(ctx, insertProduct, id, name, fixed, variable, price, position)
	return err
}

const listProducts = `SELECT id, name, fixed_cost_cents, variable_cost_cents, price_cents FROM products ORDER BY position`

func (q *Queries) ListProducts(ctx context.Context) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, listProducts)
}

const createEntryType = `INSERT INTO entry_types (flow, id, name, is_default) VALUES (?, ?, ?, ?)`

func (q *Queries) CreateEntryType(ctx context.Context, arg EntryTypeRow) error {
	_, err := q.db.ExecContext(ctx, createEntryType, arg.Flow, arg.ID, arg.Name, arg.IsDefault)
	return err
}

const listEntryTypes = `SELECT flow, id, name, is_default FROM entry_types WHERE flow = ? ORDER BY created_at, rowid`

func (q *Queries) ListEntryTypes(ctx context.Context, flow string) ([]EntryTypeRow, error) {
	rows, err := q.db.QueryContext(ctx, listEntryTypes, flow)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []EntryTypeRow
	for rows.Next() {
		var i EntryTypeRow
		if err := rows.Scan(&i.Flow, &i.ID, &i.Name, &i.IsDefault); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateEntryType = `UPDATE entry_types SET name = ? WHERE flow = ? AND id = ?`

func (q *Queries) UpdateEntryType(ctx context.Context, arg EntryTypeRow) (int64, error) {
	return affected(q.db.ExecContext(ctx, updateEntryType, arg.Name, arg.Flow, arg.ID))
}

const deleteEntryType = `DELETE FROM entry_types WHERE flow = ? AND id = ?`

func (q *Queries) DeleteEntryType(ctx context.Context, flow, id string) (int64, error) {
	return affected(q.db.ExecContext(ctx, deleteEntryType, flow, id))
}

const insertSubcategory = `INSERT INTO subcategories (flow, type_id, id, name, position) VALUES (?, ?, ?, ?, ?)`

func (q *Queries) InsertSubcategory(ctx context.Context, flow, typeID, id, name string, position int64) error {
	_, err := q.db.ExecContext(ctx, insertSubcategory, flow, typeID, id, name, position)
	return err
}

const listSubcategories = `SELECT type_id, id, name FROM subcategories WHERE flow = ? ORDER BY type_id, position`

func (q *Queries) ListSubcategories(ctx context.Context, flow string) ([]SubcategoryRow, error) {
	rows, err := q.db.QueryContext(ctx, listSubcategories, flow)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SubcategoryRow
	for rows.Next() {
		var i SubcategoryRow
		if err := rows.Scan(&i.TypeID, &i.ID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteSubcategories = `DELETE FROM subcategories WHERE flow = ? AND type_id = ?`

func (q *Queries) DeleteSubcategories(ctx context.Context, flow, typeID string) error {
	_, err := q.db.ExecContext(ctx, deleteSubcategories, flow, typeID)
	return err
}

const counterpartyColumns = `id, role, kind, name, document, address, city, state, phone, email, contact_name`

const createCounterparty = `INSERT INTO counterparties (` + counterpartyColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateCounterparty(ctx context.Context, arg CounterpartyRow) error {
	_, err := q.db.ExecContext(ctx, createCounterparty, arg.ID, arg.Role, arg.Kind, arg.Name, arg.Document,
		arg.Address, arg.City, arg.State, arg.Phone, arg.Email, arg.ContactName)
	return err
}

const listCounterparties = `SELECT ` + counterpartyColumns + ` FROM counterparties WHERE role = ? ORDER BY created_at, rowid`

func (q *Queries) ListCounterparties(ctx context.Context, role string) ([]CounterpartyRow, error) {
	rows, err := q.db.QueryContext(ctx, listCounterparties, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CounterpartyRow
	for rows.Next() {
		var i CounterpartyRow
		if err := rows.Scan(&i.ID, &i.Role, &i.Kind, &i.Name, &i.Document, &i.Address, &i.City, &i.State,
			&i.Phone, &i.Email, &i.ContactName); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateCounterparty = `UPDATE counterparties
SET kind = ?, name = ?, document = ?, address = ?, city = ?, state = ?, phone = ?, email = ?, contact_name = ?
WHERE id = ? AND role = ?`

func (q *Queries) UpdateCounterparty(ctx context.Context, arg CounterpartyRow) (int64, error) {
	return affected(q.db.ExecContext(ctx, updateCounterparty, arg.Kind, arg.Name, arg.Document, arg.Address,
		arg.City, arg.State, arg.Phone, arg.Email, arg.ContactName, arg.ID, arg.Role))
}

const deleteCounterparty = `DELETE FROM counterparties WHERE role = ? AND id = ?`

func (q *Queries) DeleteCounterparty(ctx context.Context, role, id string) (int64, error) {
	return affected(q.db.ExecContext(ctx, deleteCounterparty, role, id))
}

const createProject = `INSERT INTO projects (id, name, consolidated) VALUES (?, ?, ?)`

func (q *Queries) CreateProject(ctx context.Context, id, name string, consolidated bool) error {
	_, err := q.db.ExecContext(ctx, createProject, id, name, consolidated)
	return err
}

const listProjects = `SELECT id, name, consolidated FROM projects ORDER BY created_at, rowid`

func (q *Queries) ListProjects(ctx context.Context) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, listProjects)
}

const updateProject = `UPDATE projects SET name = ?, consolidated = ? WHERE id = ?`

func (q *Queries) UpdateProject(ctx context.Context, id, name string, consolidated bool) (int64, error) {
	return affected(q.db.ExecContext(ctx, updateProject, name, consolidated, id))
}

const deleteProject = `DELETE FROM projects WHERE id = ?`

func (q *Queries) DeleteProject(ctx context.Context, id string) (int64, error) {
	return affected(q.db.ExecContext(ctx, deleteProject, id))
}

const createPaymentMethod = `INSERT INTO payment_methods (id, name, is_default) VALUES (?, ?, ?)`

func (q *Queries) CreatePaymentMethod(ctx context.Context, id, name string, isDefault bool) error {
	_, err := q.db.ExecContext(ctx, createPaymentMethod, id, name, isDefault)
	return err
}

const listPaymentMethods = `SELECT id, name, is_default FROM payment_methods ORDER BY created_at, rowid`

func (q *Queries) ListPaymentMethods(ctx context.Context) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, listPaymentMethods)
}

const updatePaymentMethod = `UPDATE payment_methods SET name = ? WHERE id = ?`

func (q *Queries) UpdatePaymentMethod(ctx context.Context, id, name string) (int64, error) {
	return affected(q.db.ExecContext(ctx, updatePaymentMethod, name, id))
}

const deletePaymentMethod = `DELETE FROM payment_methods WHERE id = ?`

func (q *Queries) DeletePaymentMethod(ctx context.Context, id string) (int64, error) {
	return affected(q.db.ExecContext(ctx, deletePaymentMethod, id))
}

const countPaymentMethods = `SELECT COUNT(*) FROM payment_methods`

func (q *Queries) CountPaymentMethods(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPaymentMethods).Scan(&n)
	return n, err
}

const createEntry = `INSERT INTO entries (id, flow, type_id, subcategory_id, description, amount_cents, entry_date,
counterparty_id, project_id, payment_method_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateEntry(ctx context.Context, arg EntryRow) error {
	_, err := q.db.ExecContext(ctx, createEntry, arg.ID, arg.Flow, arg.TypeID, arg.SubcategoryID, arg.Description,
		arg.AmountCents, arg.EntryDate, arg.CounterpartyID, arg.ProjectID, arg.PaymentMethodID)
	return err
}

const listEntries = `SELECT id, flow, type_id, subcategory_id, description, amount_cents, entry_date,
counterparty_id, project_id, payment_method_id
FROM entries
WHERE (? = '' OR entry_date >= ?) AND (? = '' OR entry_date <= ?)
ORDER BY entry_date, rowid`

func (q *Queries) ListEntries(ctx context.Context, from, to string) ([]EntryRow, error) {
	rows, err := q.db.QueryContext(ctx, listEntries, from, from, to, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []EntryRow
	for rows.Next() {
		var i EntryRow
		if err := rows.Scan(&i.ID, &i.Flow, &i.TypeID, &i.SubcategoryID, &i.Description, &i.AmountCents,
			&i.EntryDate, &i.CounterpartyID, &i.ProjectID, &i.PaymentMethodID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteEntry = `DELETE FROM entries WHERE id = ?`

func (q *Queries) DeleteEntry(ctx context.Context, id string) (int64, error) {
	return affected(q.db.ExecContext(ctx, deleteEntry, id))
}

const createGoal = `INSERT INTO goals (id, period, flow, type_id, amount_cents) VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateGoal(ctx context.Context, arg GoalRow) error {
	_, err := q.db.ExecContext(ctx, createGoal, arg.ID, arg.Period, arg.Flow, arg.TypeID, arg.AmountCents)
	return err
}

const listGoals = `SELECT id, period, flow, type_id, amount_cents
FROM goals
WHERE (? = '' OR flow = ?) AND (? = '' OR period >= ?) AND (? = '' OR period <= ?)
ORDER BY period, rowid`

func (q *Queries) ListGoals(ctx context.Context, flow, from, to string) ([]GoalRow, error) {
	rows, err := q.db.QueryContext(ctx, listGoals, flow, flow, from, from, to, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GoalRow
	for rows.Next() {
		var i GoalRow
		if err := rows.Scan(&i.ID, &i.Period, &i.Flow, &i.TypeID, &i.AmountCents); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteGoal = `DELETE FROM goals WHERE id = ?`

func (q *Queries) DeleteGoal(ctx context.Context, id string) (int64, error) {
	return affected(q.db.ExecContext(ctx, deleteGoal, id))
}

func affected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
