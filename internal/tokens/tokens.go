// Package tokens reads and writes the whitespace-delimited "Key: value" text
// layout shared by the dataset and model file formats.
//
// The reader is strict: every key is checked against the expected token and
// any mismatch is reported as ErrUnexpectedToken, wrapped with both the
// expected and the observed token. End of stream is reported as
// io.ErrUnexpectedEOF so a truncated file can never loop.
package tokens

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrUnexpectedToken is returned when the next token differs from the expected one
// or cannot be parsed as the requested type.
var ErrUnexpectedToken = errors.New("tokens: unexpected token")

// Reader yields whitespace-separated tokens from an underlying stream.
type Reader struct {
	sc   *bufio.Scanner
	last string
}

// NewReader wraps r. Lines of any length are accepted.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<26)
	sc.Split(bufio.ScanWords)

	return &Reader{sc: sc}
}

// Next returns the next token or io.ErrUnexpectedEOF when the stream ends.
func (r *Reader) Next() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	r.last = r.sc.Text()

	return r.last, nil
}

// Last returns the most recently read token.
func (r *Reader) Last() string { return r.last }

// Expect consumes one token and fails unless it equals want.
func (r *Reader) Expect(want string) error {
	got, err := r.Next()
	if err != nil {
		return fmt.Errorf("expecting %q: %w", want, err)
	}
	if got != want {
		return fmt.Errorf("%w: want %q, got %q", ErrUnexpectedToken, want, got)
	}

	return nil
}

// SkipTo consumes tokens until one equals want. It stops at end of stream.
func (r *Reader) SkipTo(want string) error {
	for {
		got, err := r.Next()
		if err != nil {
			return fmt.Errorf("searching for %q: %w", want, err)
		}
		if got == want {
			return nil
		}
	}
}

// Int consumes one token and parses it as a base-10 integer.
func (r *Reader) Int() (int, error) {
	tok, err := r.Next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrUnexpectedToken, tok)
	}

	return v, nil
}

// Float consumes one token and parses it as a float64. "inf" and "nan"
// spellings accepted by strconv are allowed.
func (r *Reader) Float() (float64, error) {
	tok, err := r.Next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrUnexpectedToken, tok)
	}

	return v, nil
}

// Bool consumes one token written as 0 or 1.
func (r *Reader) Bool() (bool, error) {
	tok, err := r.Next()
	if err != nil {
		return false, err
	}
	switch tok {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}

	return false, fmt.Errorf("%w: %q is not a 0/1 flag", ErrUnexpectedToken, tok)
}

// KeyInt reads "key value" as an integer.
func (r *Reader) KeyInt(key string) (int, error) {
	if err := r.Expect(key); err != nil {
		return 0, err
	}
	return r.Int()
}

// KeyFloat reads "key value" as a float64.
func (r *Reader) KeyFloat(key string) (float64, error) {
	if err := r.Expect(key); err != nil {
		return 0, err
	}
	return r.Float()
}

// KeyBool reads "key value" as a 0/1 flag.
func (r *Reader) KeyBool(key string) (bool, error) {
	if err := r.Expect(key); err != nil {
		return false, err
	}
	return r.Bool()
}

// Writer emits the same layout. The first write error is sticky and every
// later call becomes a no-op; check Err once at the end.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter wraps w with buffering. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Line writes the given fields separated by single spaces and a newline.
func (w *Writer) Line(fields ...any) {
	if w.err != nil {
		return
	}
	for i, f := range fields {
		if i > 0 {
			if _, w.err = w.w.WriteString(" "); w.err != nil {
				return
			}
		}
		if _, w.err = w.w.WriteString(Format(f)); w.err != nil {
			return
		}
	}
	_, w.err = w.w.WriteString("\n")
}

// Row writes values separated by tabs followed by a newline.
func (w *Writer) Row(values []float64) {
	if w.err != nil {
		return
	}
	for j, v := range values {
		if j > 0 {
			if _, w.err = w.w.WriteString("\t"); w.err != nil {
				return
			}
		}
		if _, w.err = w.w.WriteString(FormatFloat(v)); w.err != nil {
			return
		}
	}
	_, w.err = w.w.WriteString("\n")
}

// Flush flushes buffered output and returns the first error seen.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// Format renders a single field. Booleans become 0/1 and floats use the
// shortest representation that round-trips.
func Format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(x)
	case float64:
		return FormatFloat(x)
	case fmt.Stringer:
		return x.String()
	}

	return fmt.Sprint(v)
}

// FormatFloat renders f with the shortest round-trip representation.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
