// Package csvout writes converted rate rows as CSV.
package csvout

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"csvrates/internal/rates"
)

// Header names the output columns, in order.
var Header = []string{"name", "billing_code", "avg_rate"}

// Row is one output line.
type Row struct {
	Name        string
	BillingCode string
	AvgRate     float64
}

// NewRow builds the output row for a record and its average rate.
func NewRow(rec rates.Record, avg float64) Row {
	return Row{
		Name:        rec.Name,
		BillingCode: rec.BillingCode,
		AvgRate:     avg,
	}
}

// Fields returns the row's CSV fields in Header order.
func (r Row) Fields() []string {
	return []string{r.Name, r.BillingCode, FormatRate(r.AvgRate)}
}

// Writer writes rows as CSV. The header goes out with the first row, so an
// empty conversion produces empty output.
//
// A field is quoted only when it contains a comma, a double quote, or a line
// terminator. Everything else, leading whitespace included, is written bare.
type Writer struct {
	buf         *bufio.Writer
	csv         *csv.Writer
	wroteHeader bool
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriter(w)
	// csv.NewWriter reuses buf rather than wrapping it, so rows written by
	// either path land in buf in order.
	return &Writer{buf: buf, csv: csv.NewWriter(buf)}
}

// Write appends a row, preceded by the header if it is the first.
func (w *Writer) Write(row Row) error {
	if !w.wroteHeader {
		if err := w.writeRecord(Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		w.wroteHeader = true
	}
	if err := w.writeRecord(row.Fields()); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// Flush writes any buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

func (w *Writer) writeRecord(fields []string) error {
	if !overQuoted(fields) {
		return w.csv.Write(fields)
	}
	for i, field := range fields {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		if needsQuotes(field) {
			w.buf.WriteByte('"')
			w.buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
			w.buf.WriteByte('"')
		} else {
			w.buf.WriteString(field)
		}
	}
	_, err := w.buf.WriteString("\n")
	return err
}

func needsQuotes(field string) bool {
	return strings.ContainsAny(field, ",\"\r\n")
}

// overQuoted reports whether encoding/csv would quote a field that
// needsQuotes leaves bare: `\.` and fields starting with whitespace.
func overQuoted(fields []string) bool {
	for _, field := range fields {
		if field == "" || needsQuotes(field) {
			continue
		}
		if field == `\.` {
			return true
		}
		if r, _ := utf8.DecodeRuneInString(field); unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// CreateFile creates or truncates the named output file.
func CreateFile(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// Stdout wraps the process output with a no-op Close, so the caller can
// close either destination uniformly.
func Stdout(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
