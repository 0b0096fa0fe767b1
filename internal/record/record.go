// Package record implements the line-oriented text format of SkipKV data files.
//
// Each record occupies one line: KEY<sep>VALUE\n. The key ends at the first
// separator, so values may contain the separator but keys may not. Neither
// part may contain a newline.
package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxLineSize is the longest line a Scanner accepts.
const MaxLineSize = 1 << 20

// ErrMalformed is returned for a line that is empty or has no separator.
var ErrMalformed = errors.New("record: malformed line")

// Entry is one key-value pair in text form.
type Entry struct {
	Key   string
	Value string
}

// Append appends the encoded line for e to dst.
func Append(dst []byte, e Entry, sep byte) []byte {
	dst = append(dst, e.Key...)
	dst = append(dst, sep)
	dst = append(dst, e.Value...)
	return append(dst, '\n')
}

// Split parses a line without its trailing newline. The key is everything
// before the first separator.
func Split(line string, sep byte) (Entry, error) {
	if line == "" {
		return Entry{}, ErrMalformed
	}
	i := strings.IndexByte(line, sep)
	if i < 0 {
		return Entry{}, ErrMalformed
	}
	return Entry{Key: line[:i], Value: line[i+1:]}, nil
}

// Writer buffers encoded records.
type Writer struct {
	bw  *bufio.Writer
	sep byte
	buf []byte
	n   int
}

// NewWriter returns a Writer emitting records separated by sep.
func NewWriter(w io.Writer, sep byte) *Writer {
	return &Writer{bw: bufio.NewWriter(w), sep: sep}
}

// Write encodes a single record.
func (w *Writer) Write(e Entry) error {
	w.buf = Append(w.buf[:0], e, w.sep)
	if _, err := w.bw.Write(w.buf); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.n++
	return nil
}

// Flush writes any buffered records to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Count returns the number of records written so far.
func (w *Writer) Count() int {
	return w.n
}

// Scanner reads records line by line. Malformed lines are reported through
// Entry and do not stop the scan.
type Scanner struct {
	sc   *bufio.Scanner
	sep  byte
	line int
}

// NewScanner returns a Scanner reading records separated by sep.
func NewScanner(r io.Reader, sep byte) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), MaxLineSize)
	return &Scanner{sc: sc, sep: sep}
}

// Scan advances to the next line. It returns false at EOF or on a read error.
func (s *Scanner) Scan() bool {
	if !s.sc.Scan() {
		return false
	}
	s.line++
	return true
}

// Entry parses the current line.
func (s *Scanner) Entry() (Entry, error) {
	return Split(s.sc.Text(), s.sep)
}

// Line returns the 1-based number of the current line.
func (s *Scanner) Line() int {
	return s.line
}

// Err returns the first non-EOF read error.
func (s *Scanner) Err() error {
	return s.sc.Err()
}
