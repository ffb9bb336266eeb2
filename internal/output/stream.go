package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/ipc"
	"github.com/apache/arrow/go/v13/arrow/memory"
)

var (
	ErrBatchWritten = errors.New("record batch already written")
	ErrStreamClosed = errors.New("stream already closed")
)

// StreamWriter writes an Arrow IPC stream holding exactly one record batch:
// schema message, batch message, end-of-stream marker.
type StreamWriter struct {
	buf     *bufio.Writer
	ipc     *ipc.Writer
	schema  *arrow.Schema
	written bool
	closed  bool
}

// NewStreamWriter wraps w. A nil mem uses the default allocator.
func NewStreamWriter(w io.Writer, schema *arrow.Schema, mem memory.Allocator) *StreamWriter {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	buf := bufio.NewWriter(w)
	return &StreamWriter{
		buf:    buf,
		ipc:    ipc.NewWriter(buf, ipc.WithSchema(schema), ipc.WithAllocator(mem)),
		schema: schema,
	}
}

// Write emits rec. It may be called once per stream.
func (s *StreamWriter) Write(rec arrow.Record) error {
	if s.closed {
		return ErrStreamClosed
	}
	if s.written {
		return ErrBatchWritten
	}
	if !rec.Schema().Equal(s.schema) {
		return fmt.Errorf("record schema does not match stream schema")
	}
	s.written = true
	if err := s.ipc.Write(rec); err != nil {
		return fmt.Errorf("write record batch: %w", err)
	}
	return nil
}

// Close writes the end-of-stream marker and flushes the sink.
func (s *StreamWriter) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.ipc.Close(); err != nil {
		return fmt.Errorf("close stream: %w", err)
	}
	if err := s.buf.Flush(); err != nil {
		return fmt.Errorf("flush stream: %w", err)
	}
	return nil
}
