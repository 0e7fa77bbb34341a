package render

import (
	"io"
	"sync"

	"midiglow/internal/debug"
	"midiglow/internal/processing"
)

// Ws2801Output is a frame observer that encodes each frame for a WS2801
// strip and writes it to the given writer (the SPI device file on a real
// host). WS2801 chips latch when the clock idles, so a frame is simply the
// RGB byte triplets of every pixel in strip order.
type Ws2801Output struct {
	mu     sync.Mutex
	writer io.Writer
	buffer []byte
	logger *debug.Logger
}

// NewWs2801Output creates an output writing frames to w.
func NewWs2801Output(w io.Writer, logger *debug.Logger) *Ws2801Output {
	return &Ws2801Output{writer: w, logger: logger}
}

// EncodeWs2801 packs a strip into the WS2801 wire format.
func EncodeWs2801(strip processing.Strip) []byte {
	frame := make([]byte, 0, len(strip)*3)
	for _, color := range strip {
		frame = append(frame, color.R, color.G, color.B)
	}
	return frame
}

// OnStripUpdate implements processing.Observer.
func (o *Ws2801Output) OnStripUpdate(strip processing.Strip) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.buffer = o.buffer[:0]
	for _, color := range strip {
		o.buffer = append(o.buffer, color.R, color.G, color.B)
	}

	if _, err := o.writer.Write(o.buffer); err != nil && o.logger != nil {
		o.logger.LogRenderf(debug.LogLevelError, "failed to write frame: %v", err)
	}
}
