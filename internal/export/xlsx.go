package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Workbook builds an excelize workbook with one sheet per table. The caller
// closes it.
func Workbook(tables []Table) (*excelize.File, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, t := range tables {
		index, err := f.NewSheet(t.Name)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", t.Name, err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}
		for r, row := range t.Values() {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				f.Close()
				return nil, err
			}
			values := row
			if err := f.SetSheetRow(t.Name, cell, &values); err != nil {
				f.Close()
				return nil, fmt.Errorf("sheet %s row %d: %w", t.Name, r+1, err)
			}
		}
		if err := f.SetRowStyle(t.Name, 1, 1, bold); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s header style: %w", t.Name, err)
		}
		if err := f.SetColWidth(t.Name, "A", "A", 36); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s width: %w", t.Name, err)
		}
	}

	if len(tables) > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("delete default sheet: %w", err)
		}
	}
	return f, nil
}

// WriteXLSX writes the workbook of tables to w.
func WriteXLSX(w io.Writer, tables []Table) error {
	f, err := Workbook(tables)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// FileSink writes a timestamped workbook into a directory and keeps a
// latest copy next to it.
type FileSink struct {
	dir string
	now func() time.Time
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir, now: time.Now}
}

func (s *FileSink) Name() string {
	return "xlsx"
}

// Write stores tables as relatorios-<timestamp>.xlsx and relatorios-latest.xlsx.
func (s *FileSink) Write(ctx context.Context, tables []Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := Workbook(tables)
	if err != nil {
		return err
	}
	defer f.Close()

	name := filepath.Join(s.dir, fmt.Sprintf("relatorios-%s.xlsx", s.now().Format("20060102-150405")))
	if err := f.SaveAs(name); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	latest := filepath.Join(s.dir, "relatorios-latest.xlsx")
	if err := f.SaveAs(latest); err != nil {
		return fmt.Errorf("save %s: %w", latest, err)
	}
	slog.InfoContext(ctx, "Workbook exported", "path", name, "sheets", len(tables))
	return nil
}
