package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// WorkbookStore appends to a local .xlsx file. Each call opens, edits and
// saves the workbook; the mutex serialises writers in this process only.
type WorkbookStore struct {
	mu   sync.Mutex
	path string
}

func NewWorkbookStore(path string) (*WorkbookStore, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		f := excelize.NewFile()
		defer f.Close()
		if err := f.SaveAs(path); err != nil {
			return nil, fmt.Errorf("failed to create workbook %s: %w", path, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat workbook %s: %w", path, err)
	}
	return &WorkbookStore{path: path}, nil
}

func (w *WorkbookStore) EnsureSheet(_ context.Context, sheet Sheet) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return false, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet.Title)
	if err != nil {
		return false, fmt.Errorf("failed to look up sheet %s: %w", sheet.Title, err)
	}
	if idx != -1 {
		return false, nil
	}

	if _, err := f.NewSheet(sheet.Title); err != nil {
		return false, fmt.Errorf("failed to add sheet %s: %w", sheet.Title, err)
	}
	headers := sheet.Headers
	if err := f.SetSheetRow(sheet.Title, "A1", &headers); err != nil {
		return false, fmt.Errorf("failed to write headers to %s: %w", sheet.Title, err)
	}
	if err := f.Save(); err != nil {
		return false, fmt.Errorf("failed to save workbook: %w", err)
	}
	return true, nil
}

func (w *WorkbookStore) AppendRow(_ context.Context, sheet Sheet, row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet.Title)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", sheet.Title, err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet.Title, cell, &row); err != nil {
		return fmt.Errorf("failed to append to %s: %w", sheet.Title, err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Rows returns every row of a sheet, header included.
func (w *WorkbookStore) Rows(title string) ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetRows(title)
}
