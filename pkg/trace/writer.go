package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andybalholm/brotli"
)

// Writer writes a line of text per entry.
type Writer struct {
	w           *bufio.Writer
	closers     []io.Closer
	disassemble bool
}

// NewWriter returns a Writer that writes to w. If disassemble is set,
// every line is followed by the disassembled instruction.
func NewWriter(w io.Writer, disassemble bool) *Writer {
	return &Writer{w: bufio.NewWriter(w), disassemble: disassemble}
}

// Create creates the trace file at path. Files with a .br extension are
// brotli compressed.
func Create(path string, disassemble bool) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}

	if filepath.Ext(path) != ".br" {
		w := NewWriter(f, disassemble)
		w.closers = []io.Closer{f}
		return w, nil
	}

	bw := brotli.NewWriterLevel(f, brotli.DefaultCompression)
	w := NewWriter(bw, disassemble)
	// the compressor must be closed before the file
	w.closers = []io.Closer{bw, f}
	return w, nil
}

// Open opens the trace file at path for reading, decompressing it if it
// has a .br extension.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	if filepath.Ext(path) != ".br" {
		return f, nil
	}
	return readCloser{Reader: brotli.NewReader(f), Closer: f}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

// Trace writes the entry.
func (w *Writer) Trace(e Entry) error {
	line := e.String()
	if w.disassemble {
		line += " | " + e.Instruction
	}
	if _, err := w.w.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	return nil
}

// Close flushes any buffered entries, and closes the underlying file if
// the Writer was created with Create.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	for _, c := range w.closers {
		if err := c.Close(); err != nil {
			return fmt.Errorf("trace: %w", err)
		}
	}
	return nil
}
