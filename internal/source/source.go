// Package source supplies the input side of a conversion: the byte stream
// and the lines read from it.
package source

import (
	"fmt"
	"io"
	"os"
)

// OpenFile opens the named file for reading.
func OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return f, nil
}

// Stdin wraps the process input with a no-op Close, so the caller can close
// either source uniformly.
func Stdin(r io.Reader) io.ReadCloser {
	return io.NopCloser(r)
}
