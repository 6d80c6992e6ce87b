// Package tilelist reads and writes newline delimited tile lists, one
// z/x/y coordinate or tile key per line, optionally gzip compressed.
package tilelist

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/tilezen/hilbert/pkg/coord"
	"github.com/tilezen/hilbert/pkg/s3"
)

// ParseLine accepts either z/x/y or an s3 style tile key such as
// prefix/z/x/y.zip.
func ParseLine(line string) (*coord.Coord, error) {
	line = strings.TrimSpace(line)
	if c, err := coord.Decode(line); err == nil {
		return c, nil
	}
	c, err := s3.ParseCoordFromKey(line)
	if err != nil {
		return nil, fmt.Errorf("unparseable tile %#v: %w", line, err)
	}
	return c, nil
}

// Reader yields tiles from a list. Gzip input is detected from its magic
// bytes. Blank lines are skipped.
type Reader struct {
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
}

// NewReader wraps r, transparently decompressing it if needed.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}
	var src io.Reader = br
	var closer io.Closer
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		src = zr
		closer = zr
	}
	return &Reader{scanner: bufio.NewScanner(src), closer: closer}, nil
}

// Next returns the next tile, or io.EOF at the end of input. A line that
// can't be parsed returns a *LineError; reading may continue after it.
func (r *Reader) Next() (coord.Coord, error) {
	for r.scanner.Scan() {
		r.line++
		text := r.scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		c, err := ParseLine(text)
		if err != nil {
			return coord.Coord{}, &LineError{Line: r.line, Err: err}
		}
		return *c, nil
	}
	if err := r.scanner.Err(); err != nil {
		return coord.Coord{}, err
	}
	return coord.Coord{}, io.EOF
}

// Close releases the decompressor, if any. It does not close the
// underlying reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// LineError is a parse failure on one line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Writer writes one tile per line.
type Writer struct {
	buf    *bufio.Writer
	gz     *gzip.Writer
	format func(coord.Coord) string
}

// NewWriter writes to w, gzip compressed if compress is set. format
// renders each tile; nil means z/x/y.
func NewWriter(w io.Writer, compress bool, format func(coord.Coord) string) *Writer {
	if format == nil {
		format = coord.Coord.String
	}
	result := &Writer{format: format}
	if compress {
		result.gz = gzip.NewWriter(w)
		w = result.gz
	}
	// buffer output so we make fewer system calls.
	result.buf = bufio.NewWriter(w)
	return result
}

// Write appends c to the list.
func (w *Writer) Write(c coord.Coord) error {
	if _, err := w.buf.WriteString(w.format(c)); err != nil {
		return err
	}
	return w.buf.WriteByte('\n')
}

// Close flushes buffered output and finishes the gzip stream. It does not
// close the underlying writer.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		return err
	}
	if w.gz != nil {
		return w.gz.Close()
	}
	return nil
}
