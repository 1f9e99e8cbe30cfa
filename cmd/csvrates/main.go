// csvrates - negotiated rate NDJSON to CSV converter
//
// Usage:
//
//	csvrates                        stdin  -> stdout
//	csvrates rates.jsonl            file   -> stdout
//	csvrates rates.jsonl out.csv    file   -> file
//
// Records whose average negotiated rate is above 30.0, or that carry no
// rates, are left out of the output.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"csvrates/internal/convert"
	"csvrates/internal/csvout"
	"csvrates/internal/source"
	"csvrates/pkg/errors"
	"csvrates/pkg/platform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	logger := platform.InitLogger(os.Stderr, zerolog.InfoLevel)

	app := newApp(os.Stdin, os.Stdout, logger)
	if err := app.Run(os.Args); err != nil {
		platform.LogFatal(logger, "conversion failed", err)
	}
}

func newApp(stdin io.Reader, stdout io.Writer, logger zerolog.Logger) *cli.App {
	return &cli.App{
		Name:            "csvrates",
		Usage:           "Average negotiated rates from NDJSON into CSV",
		UsageText:       "csvrates [input [output]]",
		Version:         fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       os.Stderr,
		// Exit codes are decided in main, after the error is logged.
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			return runConvert(c.Args().Slice(), stdin, stdout, logger)
		},
	}
}

// runConvert opens the input, then the output, and converts between them.
// A missing positional argument selects stdin or stdout; arguments past the
// second are ignored.
func runConvert(args []string, stdin io.Reader, stdout io.Writer, logger zerolog.Logger) (err error) {
	in, inName := source.Stdin(stdin), "stdin"
	if len(args) > 0 {
		inName = args[0]
		if in, err = source.OpenFile(inName); err != nil {
			return errors.NewSetupError(errors.ErrCodeOpenInput, inName, err)
		}
	}
	defer in.Close()

	out, outName := csvout.Stdout(stdout), "stdout"
	if len(args) > 1 {
		outName = args[1]
		if out, err = csvout.CreateFile(outName); err != nil {
			return errors.NewSetupError(errors.ErrCodeCreateOutput, outName, err)
		}
	}
	defer func() {
		if closeErr := out.Close(); err == nil && closeErr != nil {
			err = errors.NewStreamError(errors.ErrCodeFlushOutput, 0, closeErr)
		}
	}()

	logger.Debug().
		Str("input", inName).
		Str("output", outName).
		Msg("Converting negotiated rates")

	return convert.Run(in, out)
}
