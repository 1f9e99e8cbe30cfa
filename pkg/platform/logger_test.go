package platform

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"csvrates/pkg/errors"
)

func TestLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantLog  []string
	}{
		{
			name:     "decode error",
			err:      errors.NewDecodeError(errors.ErrCodeInvalidJSON, 4, "nope", fmt.Errorf("invalid character")),
			wantCode: errors.ExitDecodeError,
			wantLog:  []string{"conversion failed", "kind=decode", "code=INVALID_JSON", "line=4"},
		},
		{
			name:     "wrapped setup error",
			err:      fmt.Errorf("run: %w", errors.NewSetupError(errors.ErrCodeOpenInput, "in.jsonl", fmt.Errorf("no such file"))),
			wantCode: errors.ExitSetupError,
			wantLog:  []string{"kind=setup", "code=OPEN_INPUT"},
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("flag provided but not defined: -x"),
			wantCode: errors.ExitFailure,
			wantLog:  []string{"flag provided but not defined"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := InitLogger(&buf, zerolog.InfoLevel)

			if got := LogError(logger, "conversion failed", tt.err); got != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, got)
			}
			out := buf.String()
			for _, want := range tt.wantLog {
				if !strings.Contains(out, want) {
					t.Errorf("expected log to contain %q, got %q", want, out)
				}
			}
			if !strings.Contains(out, "run_id=") {
				t.Errorf("expected run_id in log, got %q", out)
			}
		})
	}
}

func TestInitLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(&buf, zerolog.InfoLevel)
	logger.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug output to be filtered, got %q", buf.String())
	}
	logger.Info().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected info output, got %q", buf.String())
	}
}
