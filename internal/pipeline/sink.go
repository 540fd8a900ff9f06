package pipeline

import (
	"bufio"
	"io"
	"sync"
)

// Sink receives formatted output lines in input order.
type Sink interface {
	WriteLine(line string) error
}

// WriterSink writes each line followed by a newline.
// Call Flush when the batch is done.
type WriterSink struct {
	w *bufio.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

// WriteLine implements Sink.
func (s *WriterSink) WriteLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Flush writes any buffered output.
func (s *WriterSink) Flush() error {
	return s.w.Flush()
}

// SliceSink collects lines in memory.
//
// Thread-safety: SliceSink is safe for concurrent use via internal mutex.
type SliceSink struct {
	mu    sync.Mutex
	lines []string
}

// WriteLine implements Sink.
func (s *SliceSink) WriteLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return nil
}

// Lines returns a copy of the collected lines.
func (s *SliceSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}
