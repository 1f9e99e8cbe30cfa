package source

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// MaxLineSize is the longest line Lines accepts. Rate files put a whole
// billing code on one line, so lines are often megabytes long.
const MaxLineSize = 1 << 30

const initialBufferSize = 64 * 1024

// Lines reads newline-delimited text, rejecting input that is not UTF-8.
// Terminators ("\n" or "\r\n") are stripped; a last line without one is
// still returned.
type Lines struct {
	src     *errReader
	scanner *bufio.Scanner
	line    int
}

// NewLines returns a Lines reading from r.
func NewLines(r io.Reader) *Lines {
	l := &Lines{
		src: &errReader{r: transform.NewReader(r, encoding.UTF8Validator)},
	}
	l.scanner = bufio.NewScanner(l.src)
	l.scanner.Buffer(make([]byte, initialBufferSize), MaxLineSize)
	l.scanner.Split(l.split)
	return l
}

// Scan advances to the next line. It returns false at the end of input or
// on the first read error, which Err then reports.
func (l *Lines) Scan() bool {
	if !l.scanner.Scan() {
		return false
	}
	l.line++
	return true
}

// Bytes returns the current line. The slice is only valid until the next
// call to Scan.
func (l *Lines) Bytes() []byte {
	return l.scanner.Bytes()
}

// Line returns the 1-based number of the current line.
func (l *Lines) Line() int {
	return l.line
}

// Err returns the first read error, or nil at a clean end of input.
func (l *Lines) Err() error {
	return l.scanner.Err()
}

// split is bufio.ScanLines, except that the unterminated tail left behind
// by a failed read is an error rather than a final line.
func (l *Lines) split(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && l.src.err != nil && len(data) > 0 && bytes.IndexByte(data, '\n') < 0 {
		return 0, nil, l.src.err
	}
	return bufio.ScanLines(data, atEOF)
}

// errReader remembers the first non-EOF error of the underlying reader.
type errReader struct {
	r   io.Reader
	err error
}

func (e *errReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && err != io.EOF && e.err == nil {
		e.err = err
	}
	return n, err
}
