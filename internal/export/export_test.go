package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"financeiro/internal/core"
	"financeiro/internal/ports/memory"
	"financeiro/internal/services"
)

func snapshot(t *testing.T) services.Snapshot {
	t.Helper()
	store := memory.NewDefault()
	snap, err := services.NewReportService(store, store, store, core.BalanceChained).Snapshot(context.Background(), "")
	if err != nil {
		t.Fatalf("Snapshot() = %v", err)
	}
	return snap
}

func TestTables(t *testing.T) {
	tables := Tables(snapshot(t))

	want := []struct {
		name string
		rows int
	}{
		{TabDRE, 48},
		{TabDFC, 17},
		{TabBudget, 9},
		{TabDelinquency, 9},
		{TabPayables, 9},
		{TabPricing, 7},
	}
	if len(tables) != len(want) {
		t.Fatalf("Tables() = %d tables, want %d", len(tables), len(want))
	}
	for i, w := range want {
		if tables[i].Name != w.name {
			t.Errorf("table %d = %s, want %s", i, tables[i].Name, w.name)
		}
		if len(tables[i].Rows) != w.rows {
			t.Errorf("%s rows = %d, want %d", w.name, len(tables[i].Rows), w.rows)
		}
		for r, row := range tables[i].Rows {
			if len(row) != len(tables[i].Header) {
				t.Errorf("%s row %d has %d cells, header has %d", w.name, r, len(row), len(tables[i].Header))
				break
			}
		}
	}

	dre := tables[0]
	if dre.Rows[0][0] != "Receita Bruta" || dre.Rows[1][0] != "  Receitas de Serviços" {
		t.Errorf("DRE names = %q, %q", dre.Rows[0][0], dre.Rows[1][0])
	}
	if got := dre.Rows[0][1]; got != 450000.0 {
		t.Errorf("Receita Bruta jan = %v, want 450000", got)
	}
}

func TestPercentUndefined(t *testing.T) {
	if got := percent(core.UndefinedRatio()); got != "n/d" {
		t.Errorf("percent(undefined) = %v, want n/d", got)
	}
	if got := percent(core.RatioFromFloat(12.345)); got != 12.35 {
		t.Errorf("percent(12.345) = %v, want 12.35", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	tables := Tables(snapshot(t))
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, tables); err != nil {
		t.Fatalf("WriteXLSX() = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() = %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 6 || sheets[0] != TabDRE || sheets[5] != TabPricing {
		t.Errorf("GetSheetList() = %v", sheets)
	}
	v, err := f.GetCellValue(TabBudget, "A2")
	if err != nil {
		t.Fatalf("GetCellValue() = %v", err)
	}
	if v != "Receita Bruta" {
		t.Errorf("Orcamento!A2 = %q, want Receita Bruta", v)
	}
	if v, _ := f.GetCellValue(TabPayables, "A1"); v != "Fornecedor" {
		t.Errorf("Contas a Pagar!A1 = %q, want Fornecedor", v)
	}
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	s := NewFileSink(dir)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC) }

	if err := s.Write(context.Background(), Tables(snapshot(t))); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	for _, name := range []string{"relatorios-20260301-083000.xlsx", "relatorios-latest.xlsx"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Write(ctx, nil); err == nil {
		t.Error("Write() with cancelled context should fail")
	}
}
