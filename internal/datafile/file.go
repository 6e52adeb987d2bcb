// Package datafile writes column-oriented text files with one header row
// followed by one row per simulation update.
package datafile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// DefaultPrecision is the number of decimal digits written for real values.
const DefaultPrecision = 4

// DefaultDelimiter separates columns.
const DefaultDelimiter = " "

// Errors returned by File.
var (
	ErrSchemaMismatch   = errors.New("row does not match declared columns")
	ErrColumnsDeclared  = errors.New("columns already declared")
	ErrInvalidColumn    = errors.New("invalid column label")
	ErrInvalidDelimiter = errors.New("invalid delimiter")
	ErrClosed           = errors.New("data file closed")
)

// Options controls formatting and durability of a data file.
type Options struct {
	Delimiter string
	Precision int
	// Sync fsyncs the file after every row.
	Sync bool
}

// DefaultOptions returns space-delimited, 4-digit, fsync-per-row options.
func DefaultOptions() Options {
	return Options{Delimiter: DefaultDelimiter, Precision: DefaultPrecision, Sync: true}
}

func (o Options) withDefaults() Options {
	if o.Delimiter == "" {
		o.Delimiter = DefaultDelimiter
	}
	if o.Precision <= 0 {
		o.Precision = DefaultPrecision
	}
	return o
}

// ValidateDelimiter rejects delimiters that can occur inside a formatted
// value (digits, letters of NaN and Inf, sign, decimal point) or that
// contain a line break.
func ValidateDelimiter(delim string) error {
	if delim == "" {
		return fmt.Errorf("%w: empty", ErrInvalidDelimiter)
	}
	for _, r := range delim {
		if r == '\n' || r == '\r' || r == '.' || r == '-' || r == '+' ||
			unicode.IsDigit(r) || unicode.IsLetter(r) {
			return fmt.Errorf("%w: %q can appear in a value", ErrInvalidDelimiter, delim)
		}
	}
	return nil
}

func whitespace(delim string) bool {
	return strings.TrimSpace(delim) == ""
}

// File is a schema-declared, append-only table. It is not safe for
// concurrent use.
type File struct {
	file    *os.File
	w       *bufio.Writer
	opts    Options
	columns []string
	closed  bool
}

// Create creates (or truncates) dir/name.
func Create(dir, name string, opts Options) (*File, error) {
	opts = opts.withDefaults()
	if err := ValidateDelimiter(opts.Delimiter); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating data file: %w", err)
	}
	return &File{file: f, w: bufio.NewWriter(f), opts: opts}, nil
}

// Path returns the path to the data file.
func (f *File) Path() string {
	return f.file.Name()
}

// Columns returns a copy of the declared column labels.
func (f *File) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Width is the number of declared columns, or 0 before DeclareColumns.
func (f *File) Width() int {
	return len(f.columns)
}

// DeclareColumns fixes the schema and writes the header row. It must be
// called exactly once, before any row. The first label names the update column.
// Labels must not contain the delimiter or a line break; with a whitespace
// delimiter they must not contain any whitespace.
func (f *File) DeclareColumns(labels ...string) error {
	if f.closed {
		return ErrClosed
	}
	if f.columns != nil {
		return ErrColumnsDeclared
	}
	if len(labels) == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalidColumn)
	}
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if l == "" {
			return fmt.Errorf("%w: empty label", ErrInvalidColumn)
		}
		if strings.ContainsAny(l, "\n\r") || strings.Contains(l, f.opts.Delimiter) ||
			(whitespace(f.opts.Delimiter) && strings.ContainsFunc(l, unicode.IsSpace)) {
			return fmt.Errorf("%w: %q contains the delimiter or a line break", ErrInvalidColumn, l)
		}
		if seen[l] {
			return fmt.Errorf("%w: duplicate label %q", ErrInvalidColumn, l)
		}
		seen[l] = true
	}

	f.columns = append([]string(nil), labels...)
	return f.writeLine(f.columns)
}

// BeginRow starts a row keyed by the update counter. Values are appended with
// the Row methods and committed with Row.End.
func (f *File) BeginRow(update int) *Row {
	r := &Row{file: f, fields: make([]string, 0, max(len(f.columns), 1))}
	r.fields = append(r.fields, strconv.Itoa(update))
	return r
}

// WriteRow writes one complete row in a single call.
func (f *File) WriteRow(update int, values ...float64) error {
	return f.BeginRow(update).Floats(values...).End()
}

func (f *File) formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', f.opts.Precision, 64)
}

func (f *File) writeLine(fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if _, err := f.w.WriteString(f.opts.Delimiter); err != nil {
				return fmt.Errorf("writing %s: %w", filepath.Base(f.Path()), err)
			}
		}
		if _, err := f.w.WriteString(field); err != nil {
			return fmt.Errorf("writing %s: %w", filepath.Base(f.Path()), err)
		}
	}
	if err := f.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(f.Path()), err)
	}
	if err := f.w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", filepath.Base(f.Path()), err)
	}
	if f.opts.Sync {
		if err := f.file.Sync(); err != nil {
			return fmt.Errorf("syncing %s: %w", filepath.Base(f.Path()), err)
		}
	}
	return nil
}

// Close flushes and closes the data file. Closing twice is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	flushErr := f.w.Flush()
	closeErr := f.file.Close()
	if flushErr != nil {
		return fmt.Errorf("flushing %s: %w", filepath.Base(f.Path()), flushErr)
	}
	return closeErr
}

// Row accumulates the values of one update. Nothing reaches the file until
// End succeeds.
type Row struct {
	file   *File
	fields []string
}

// Float appends a real value in fixed-point notation.
func (r *Row) Float(v float64) *Row {
	r.fields = append(r.fields, r.file.formatFloat(v))
	return r
}

// Floats appends each value in order.
func (r *Row) Floats(vs ...float64) *Row {
	for _, v := range vs {
		r.Float(v)
	}
	return r
}

// End terminates the row, flushes it and checks its arity against the
// declared columns. A mismatched row is discarded and ErrSchemaMismatch returned.
func (r *Row) End() error {
	f := r.file
	if f.closed {
		return ErrClosed
	}
	if f.columns == nil {
		return fmt.Errorf("%w: columns not declared", ErrSchemaMismatch)
	}
	if len(r.fields) != len(f.columns) {
		return fmt.Errorf("%w: %s has %d columns, row has %d",
			ErrSchemaMismatch, filepath.Base(f.Path()), len(f.columns), len(r.fields))
	}
	return f.writeLine(r.fields)
}
