package platform

import (
	stderrors "errors"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"csvrates/pkg/errors"
)

// InitLogger returns a human-readable logger writing to w, tagged with a
// fresh run id. Colour is used only when w is a terminal. Diagnostics never
// go to stdout, which may be carrying the CSV output.
func InitLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	out := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out.Out = colorable.NewColorable(f)
		out.NoColor = false
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}

// LogError logs a failed run with whatever structure the error carries and
// returns the exit code the process should end with.
func LogError(logger zerolog.Logger, msg string, err error) int {
	event := logger.Error().Err(err)

	var convErr *errors.ConvertError
	if stderrors.As(err, &convErr) {
		event = event.Str("kind", convErr.Kind.String()).Str("code", convErr.Code)
		if convErr.Line > 0 {
			event = event.Int("line", convErr.Line)
		}
		event.Msg(msg)
		return convErr.ExitCode()
	}

	event.Msg(msg)
	return errors.ExitFailure
}

// LogFatal logs err and exits the process.
func LogFatal(logger zerolog.Logger, msg string, err error) {
	os.Exit(LogError(logger, msg, err))
}
