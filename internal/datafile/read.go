package datafile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Table is a data file read back into memory.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Float parses column col of row i as a real value.
func (t *Table) Float(i, col int) (float64, error) {
	v, err := strconv.ParseFloat(t.Rows[i][col], 64)
	if err != nil {
		return 0, fmt.Errorf("row %d column %s: %w", i, t.Columns[col], err)
	}
	return v, nil
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// ReadTable parses a header row and data rows separated by delim. Every row
// must have exactly as many fields as the header.
func ReadTable(r io.Reader, delim string) (*Table, error) {
	if delim == "" {
		delim = DefaultDelimiter
	}
	split := func(line string) []string { return strings.Split(line, delim) }
	if strings.TrimSpace(delim) == "" {
		split = strings.Fields
	}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)

	t := &Table{}
	line := 0
	for s.Scan() {
		line++
		text := s.Text()
		if text == "" {
			continue
		}
		fields := split(text)
		if t.Columns == nil {
			t.Columns = fields
			continue
		}
		if len(fields) != len(t.Columns) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d",
				ErrSchemaMismatch, line, len(fields), len(t.Columns))
		}
		t.Rows = append(t.Rows, fields)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning data file: %w", err)
	}
	return t, nil
}

// ReadFile opens path and parses it with ReadTable.
func ReadFile(path, delim string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening data file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	t, err := ReadTable(f, delim)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return t, nil
}
