package processing

import (
	"fmt"
	"strings"

	"midiglow/internal/common"
	"midiglow/internal/debug"
)

// StripChangeLogger logs the rendered strip whenever it differs from the
// previous frame. Useful when bringing up new patches without hardware.
type StripChangeLogger struct {
	concert  *Concert
	token    common.SubscriptionToken
	previous Strip
	logger   *debug.Logger
}

// NewStripChangeLogger subscribes a logger to the concert's frames.
func NewStripChangeLogger(concert *Concert, logger *debug.Logger) *StripChangeLogger {
	l := &StripChangeLogger{concert: concert, logger: logger}
	l.token = concert.Subscribe(l)
	return l
}

// Close unsubscribes from the concert.
func (l *StripChangeLogger) Close() {
	l.concert.Unsubscribe(l.token)
}

// OnStripUpdate implements Observer.
func (l *StripChangeLogger) OnStripUpdate(strip Strip) {
	if l.previous != nil && len(strip) == len(l.previous) {
		same := true
		for i := range strip {
			if strip[i] != l.previous[i] {
				same = false
				break
			}
		}
		if same {
			return
		}
	}

	l.previous = append(l.previous[:0], strip...)

	var b strings.Builder
	for _, color := range strip {
		fmt.Fprintf(&b, "%02x%02x%02x ", color.R, color.G, color.B)
	}
	l.logger.LogProcessingf(debug.LogLevelDebug, "strip: %s", strings.TrimSpace(b.String()))
}
