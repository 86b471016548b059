package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Alia5/planckmap/device"
)

// RawLogger handles raw HID report logging with optional file output.
type RawLogger interface {
	Log(r device.Report)
}

// rawLogger implements RawLogger with thread-safe logging.
type rawLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w, now: time.Now}
}

// Log emits a single-line report log with timestamp, endpoint and hex dump.
func (r *rawLogger) Log(rep device.Report) {
	if len(rep.Data) == 0 || r.w == nil {
		return
	}

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, b := range rep.Data {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s %-8s report: %d bytes, hex: %s\n",
		r.now().Format("2006/01/02 15:04:05.000"),
		rep.Endpoint,
		len(rep.Data),
		hexbuf.String())

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
