// Package convert runs the rate conversion pipeline: read a line, decode the
// record, reduce it to an average rate, filter it, write a CSV row.
package convert

import (
	stderrors "errors"
	"io"

	"csvrates/internal/csvout"
	"csvrates/internal/rates"
	"csvrates/internal/source"
	"csvrates/pkg/errors"
)

// Run converts every line of in and writes the surviving rows to out. It
// stops at the first failure and returns it as a *errors.ConvertError. Rows
// written before a failure are still flushed to out.
func Run(in io.Reader, out io.Writer) (err error) {
	lines := source.NewLines(in)
	w := csvout.NewWriter(out)
	defer func() {
		flushErr := w.Flush()
		if err == nil && flushErr != nil {
			err = errors.NewStreamError(errors.ErrCodeFlushOutput, 0, flushErr)
		}
	}()

	for lines.Scan() {
		line := lines.Line()
		content := lines.Bytes()

		rec, decodeErr := rates.Decode(content)
		if decodeErr != nil {
			return errors.NewDecodeError(decodeCode(decodeErr), line, string(content), decodeErr)
		}

		avg, ok := rates.Reduce(rec)
		if !ok {
			continue
		}

		if writeErr := w.Write(csvout.NewRow(rec, avg)); writeErr != nil {
			return errors.NewStreamError(errors.ErrCodeWriteRow, line, writeErr)
		}
	}
	if readErr := lines.Err(); readErr != nil {
		return errors.NewStreamError(errors.ErrCodeReadLine, lines.Line()+1, readErr)
	}
	return nil
}

func decodeCode(err error) string {
	var missing *rates.MissingFieldError
	if stderrors.As(err, &missing) {
		return errors.ErrCodeMissingField
	}
	var duplicate *rates.DuplicateFieldError
	if stderrors.As(err, &duplicate) {
		return errors.ErrCodeDuplicateField
	}
	return errors.ErrCodeInvalidJSON
}
