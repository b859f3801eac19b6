package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrReferenceEnded is returned by a Comparer once the reference trace
// has no more lines.
var ErrReferenceEnded = errors.New("trace: reference ended")

// MismatchError is returned by a Comparer when an entry differs from the
// reference trace.
type MismatchError struct {
	Line int
	Want string
	Got  Entry
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("trace: mismatch at line %d (cycle %d, %s)\nwant: %s\ngot:  %s",
		e.Line, e.Got.Cycle, e.Got.Instruction, e.Want, e.Got)
}

// Comparer compares every entry against the next line of a reference
// trace in the Gameboy Doctor format.
type Comparer struct {
	s    *bufio.Scanner
	line int
}

// NewComparer returns a Comparer that reads the reference trace from r.
func NewComparer(r io.Reader) *Comparer {
	return &Comparer{s: bufio.NewScanner(r)}
}

// Trace compares the entry against the next line of the reference.
func (c *Comparer) Trace(e Entry) error {
	if !c.s.Scan() {
		if err := c.s.Err(); err != nil {
			return fmt.Errorf("trace: %w", err)
		}
		return ErrReferenceEnded
	}
	c.line++

	want, _, _ := strings.Cut(c.s.Text(), " |")
	if want = strings.TrimSpace(want); want != e.String() {
		return &MismatchError{Line: c.line, Want: want, Got: e}
	}
	return nil
}

// Lines returns the number of lines compared so far.
func (c *Comparer) Lines() int {
	return c.line
}
