// Package errors provides the structured, stage-aware errors raised while
// converting a rate feed. Every error here is fatal to the run.
package errors

import (
	"fmt"
	"unicode/utf8"
)

// Kind identifies the pipeline stage that failed.
type Kind int

const (
	KindSetup Kind = iota + 1
	KindStream
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindStream:
		return "stream"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Process exit codes, one per failing stage.
const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitSetupError  = 10
	ExitStreamError = 11
	ExitDecodeError = 12
)

// ExitCode returns the process exit status for errors of this kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindSetup:
		return ExitSetupError
	case KindStream:
		return ExitStreamError
	case KindDecode:
		return ExitDecodeError
	default:
		return ExitFailure
	}
}

// Error codes
const (
	ErrCodeOpenInput      = "OPEN_INPUT"
	ErrCodeCreateOutput   = "CREATE_OUTPUT"
	ErrCodeReadLine       = "READ_LINE"
	ErrCodeWriteRow       = "WRITE_ROW"
	ErrCodeFlushOutput    = "FLUSH_OUTPUT"
	ErrCodeInvalidJSON    = "INVALID_JSON"
	ErrCodeMissingField   = "MISSING_FIELD"
	ErrCodeDuplicateField = "DUPLICATE_FIELD"
)

// MaxContent bounds how much of an offending line is quoted in a message.
const MaxContent = 256

// ConvertError is a fatal conversion failure with its context.
type ConvertError struct {
	Kind    Kind
	Code    string
	Message string
	Line    int    // 1-based input line, 0 when not tied to a line
	Content string // offending line content, decode errors only
	Err     error
}

func (e *ConvertError) Error() string {
	msg := fmt.Sprintf("[%s] %s: %s", e.Kind, e.Code, e.Message)
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Content != "" {
		msg = fmt.Sprintf("%s: %q", msg, truncate(e.Content, MaxContent))
	}
	return msg
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit status for this error.
func (e *ConvertError) ExitCode() int {
	return e.Kind.ExitCode()
}

// NewSetupError creates an error for a stream that could not be acquired.
func NewSetupError(code, path string, err error) *ConvertError {
	return &ConvertError{
		Kind:    KindSetup,
		Code:    code,
		Message: fmt.Sprintf("cannot open %s", path),
		Err:     err,
	}
}

// NewStreamError creates an error for a failed read or write.
func NewStreamError(code string, line int, err error) *ConvertError {
	msg := "failed to write output"
	if code == ErrCodeReadLine {
		msg = "failed to read input line"
	}
	return &ConvertError{
		Kind:    KindStream,
		Code:    code,
		Message: msg,
		Line:    line,
		Err:     err,
	}
}

// NewDecodeError creates an error for a line that is not a valid record.
func NewDecodeError(code string, line int, content string, err error) *ConvertError {
	return &ConvertError{
		Kind:    KindDecode,
		Code:    code,
		Message: "invalid record",
		Line:    line,
		Content: content,
		Err:     err,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
