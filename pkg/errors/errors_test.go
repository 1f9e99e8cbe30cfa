package errors

import (
	stderrors "errors"
	"io"
	"os"
	"strings"
	"testing"
)

func TestConvertErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *ConvertError
		want string
	}{
		{
			name: "setup",
			err:  NewSetupError(ErrCodeOpenInput, "rates.jsonl", os.ErrNotExist),
			want: "[setup] OPEN_INPUT: cannot open rates.jsonl: file does not exist",
		},
		{
			name: "read",
			err:  NewStreamError(ErrCodeReadLine, 7, io.ErrUnexpectedEOF),
			want: "[stream] READ_LINE: failed to read input line (line 7): unexpected EOF",
		},
		{
			name: "flush",
			err:  NewStreamError(ErrCodeFlushOutput, 0, io.ErrClosedPipe),
			want: "[stream] FLUSH_OUTPUT: failed to write output: io: read/write on closed pipe",
		},
		{
			name: "decode",
			err:  NewDecodeError(ErrCodeMissingField, 2, `{"name":"X"}`, stderrors.New("missing field `billing_code`")),
			want: "[decode] MISSING_FIELD: invalid record (line 2): missing field `billing_code`: \"{\\\"name\\\":\\\"X\\\"}\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestConvertErrorUnwrap(t *testing.T) {
	err := NewSetupError(ErrCodeCreateOutput, "out.csv", os.ErrPermission)
	if !stderrors.Is(err, os.ErrPermission) {
		t.Error("expected wrapped permission error")
	}

	var target *ConvertError
	if !stderrors.As(error(err), &target) || target.Code != ErrCodeCreateOutput {
		t.Errorf("expected ConvertError with code %s", ErrCodeCreateOutput)
	}
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindSetup, ExitSetupError},
		{KindStream, ExitStreamError},
		{KindDecode, ExitDecodeError},
		{Kind(0), ExitFailure},
	}

	for _, tt := range tests {
		if got := tt.kind.ExitCode(); got != tt.want {
			t.Errorf("%s: expected exit code %d, got %d", tt.kind, tt.want, got)
		}
		if tt.want == ExitSuccess {
			t.Errorf("%s: failures must not exit with success", tt.kind)
		}
	}
}

func TestDecodeErrorTruncatesContent(t *testing.T) {
	long := strings.Repeat("é", MaxContent)
	err := NewDecodeError(ErrCodeInvalidJSON, 1, long, stderrors.New("bad"))

	msg := err.Error()
	if !strings.HasSuffix(msg, `..."`) {
		t.Errorf("expected truncated content, got %q", msg)
	}
	if strings.Contains(msg, `\x`) {
		t.Errorf("truncation split a rune: %q", msg)
	}
	if err.Content != long {
		t.Error("Content must keep the full line")
	}
}
