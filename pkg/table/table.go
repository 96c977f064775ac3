// Package table loads and saves CSV files as ordered slices of records.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"datacleaner/pkg/model"
)

var ErrEmpty = errors.New("empty csv: no header row")

// Table keeps the column order of the source so written files are stable.
type Table struct {
	Columns []string
	Rows    []model.Record
}

// Read parses CSV with a header row. Cells are kept as strings, whitespace
// included. Rows shorter than the header leave the missing columns absent.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("parse csv header: %w", err)
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &Table{Columns: dedupeColumns(header)}
	for n := 1; ; n++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if len(row) > len(t.Columns) {
			return nil, fmt.Errorf("parse csv: record %d has %d fields, header has %d", n, len(row), len(t.Columns))
		}

		rec := make(model.Record, len(t.Columns))
		for i, cell := range row {
			rec[t.Columns[i]] = cell
		}
		t.Rows = append(t.Rows, rec)
	}

	return t, nil
}

func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// FromRecords builds a table from records, columns in first-seen order with
// keys of each record sorted.
func FromRecords(records []model.Record) *Table {
	t := &Table{Rows: records}
	seen := make(map[string]bool)
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		slices.Sort(keys)
		for _, k := range keys {
			seen[k] = true
			t.Columns = append(t.Columns, k)
		}
	}
	return t
}

func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// AppendColumn adds name after the existing columns unless already present.
func (t *Table) AppendColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) Write(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(t.Columns))
	for _, rec := range t.Rows {
		for i, col := range t.Columns {
			row[i] = FormatCell(rec[col])
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if err := t.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatCell renders a cell value. nil, the invalid marker, is "".
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// dedupeColumns suffixes repeated header names with .1, .2 and so on.
func dedupeColumns(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, name := range header {
		candidate := name
		for n := 1; used[candidate]; n++ {
			candidate = name + "." + strconv.Itoa(n)
		}
		used[candidate] = true
		out[i] = candidate
	}
	return out
}
