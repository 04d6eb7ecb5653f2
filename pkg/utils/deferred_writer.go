// Package utils holds small io helpers.
package utils

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// DeferredWriter holds writes in memory until Flush is called. Writes past
// Limit bytes are dropped and counted; Flush reports how much was lost.
// Safe for concurrent use.
type DeferredWriter struct {
	// Limit caps the buffered bytes. Zero means unbounded.
	Limit int

	mu      sync.Mutex
	buf     bytes.Buffer
	dropped int
}

// Write buffers p. It never fails so a logger writing to it is never
// interrupted; overflow is counted instead.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.Limit > 0 && d.buf.Len()+len(p) > d.Limit {
		d.dropped += len(p)
		return len(p), nil
	}
	return d.buf.Write(p)
}

// Flush writes buffered data to w and resets the writer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	dropped := d.dropped
	d.dropped = 0

	if d.buf.Len() > 0 {
		if _, err := d.buf.WriteTo(w); err != nil {
			return err
		}
	}
	if dropped > 0 {
		if _, err := fmt.Fprintf(w, "... %d bytes of output dropped\n", dropped); err != nil {
			return err
		}
	}
	return nil
}
