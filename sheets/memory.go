package sheets

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps sheets in process memory. Errors can be injected per
// sheet title to simulate backend failures.
type MemoryStore struct {
	mu          sync.Mutex
	tables      map[string][][]string
	ensureCalls int
	appendCalls int

	EnsureErr map[string]error
	AppendErr map[string]error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables:    make(map[string][][]string),
		EnsureErr: make(map[string]error),
		AppendErr: make(map[string]error),
	}
}

func (m *MemoryStore) EnsureSheet(_ context.Context, sheet Sheet) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureCalls++
	if err := m.EnsureErr[sheet.Title]; err != nil {
		return false, err
	}
	if _, ok := m.tables[sheet.Title]; ok {
		return false, nil
	}
	m.tables[sheet.Title] = [][]string{append([]string(nil), sheet.Headers...)}
	return true, nil
}

func (m *MemoryStore) AppendRow(_ context.Context, sheet Sheet, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.appendCalls++
	if err := m.AppendErr[sheet.Title]; err != nil {
		return err
	}
	table, ok := m.tables[sheet.Title]
	if !ok {
		return fmt.Errorf("sheet %s does not exist", sheet.Title)
	}
	m.tables[sheet.Title] = append(table, append([]string(nil), row...))
	return nil
}

// Header returns the first row of a sheet, or nil if it does not exist.
func (m *MemoryStore) Header(title string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	table, ok := m.tables[title]
	if !ok || len(table) == 0 {
		return nil
	}
	return table[0]
}

// Rows returns the data rows of a sheet, excluding the header.
func (m *MemoryStore) Rows(title string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	table, ok := m.tables[title]
	if !ok || len(table) < 2 {
		return nil
	}
	return table[1:]
}

func (m *MemoryStore) AppendCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendCalls
}

func (m *MemoryStore) EnsureCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensureCalls
}
