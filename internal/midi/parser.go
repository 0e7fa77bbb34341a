package midi

import (
	"sync"

	"midiglow/internal/common"
	"midiglow/internal/debug"
)

// Parser is a stateful byte-stream reassembler for channel-voice messages.
// Feed it bytes with ProcessMidiByte; decoded events go to all subscribers.
//
// Running status is not supported: data bytes arriving without a preceding
// status byte are discarded.
type Parser struct {
	observersMu sync.Mutex
	observers   common.ObserverList[Observer]

	building bool
	current  []byte

	logger *debug.Logger
}

// NewParser creates a parser in the idle state.
func NewParser(logger *debug.Logger) *Parser {
	return &Parser{logger: logger}
}

// Subscribe registers an observer for decoded events.
func (p *Parser) Subscribe(observer Observer) common.SubscriptionToken {
	p.observersMu.Lock()
	defer p.observersMu.Unlock()

	return p.observers.Subscribe(observer)
}

// Unsubscribe cancels a subscription.
func (p *Parser) Unsubscribe(token common.SubscriptionToken) {
	p.observersMu.Lock()
	defer p.observersMu.Unlock()

	p.observers.Unsubscribe(token)
}

// ProcessMidiByte feeds a single byte from the wire into the state machine.
// Malformed input never panics; bytes are dropped until the next status byte.
func (p *Parser) ProcessMidiByte(value uint8) {
	if value&0x80 == 0x80 {
		// Status byte. Abort any message in progress and start a new one.
		p.current = p.current[:0]
		p.building = true
	}

	if !p.building {
		// Data byte without a status byte (e.g. running status): discard.
		return
	}

	p.current = append(p.current, value)

	// Get status (high nibble) and channel (low nibble) from status byte
	statusByte := p.current[0]
	status := statusByte & 0xF0
	channel := statusByte & 0x0F

	switch status {
	case StatusNoteOff:
		if len(p.current) >= 3 {
			p.notifyNoteChange(channel, p.current[1], p.current[2], false)
			p.building = false
		}

	case StatusNoteOn:
		// Velocity 0 is passed through as-is; remapping to note-off is the
		// caller's business.
		if len(p.current) >= 3 {
			p.notifyNoteChange(channel, p.current[1], p.current[2], true)
			p.building = false
		}

	case StatusControlChange:
		if len(p.current) >= 3 {
			p.notifyControlChange(channel, p.current[1], p.current[2])
			p.building = false
		}

	case StatusProgramChange:
		if len(p.current) >= 2 {
			p.notifyProgramChange(channel, p.current[1])
			p.building = false
		}

	case StatusChannelPressureChange:
		if len(p.current) >= 2 {
			p.notifyChannelPressureChange(channel, p.current[1])
			p.building = false
		}

	case StatusPitchBendChange:
		if len(p.current) >= 3 {
			// 14-bit value: first data byte has the low 7 bits, second the high 7 bits
			value := uint16(p.current[1]) | uint16(p.current[2])<<7
			p.notifyPitchBendChange(channel, value)
			p.building = false
		}

	default:
		// Unsupported status
		if p.logger != nil {
			p.logger.LogMIDIf(debug.LogLevelWarning,
				"Unsupported MIDI status %#02x on channel %2d, ignoring rest of message", status, channel)
		}
		p.building = false
	}
}

// ProcessMidiBytes feeds a sequence of bytes in order.
func (p *Parser) ProcessMidiBytes(values []byte) {
	for _, value := range values {
		p.ProcessMidiByte(value)
	}
}

func (p *Parser) notifyNoteChange(channel, pitch, velocity uint8, on bool) {
	p.observersMu.Lock()
	defer p.observersMu.Unlock()

	p.observers.NotifyObservers(func(o Observer) {
		o.OnNoteChange(channel, pitch, velocity, on)
	})
}

func (p *Parser) notifyControlChange(channel, controller, value uint8) {
	p.observersMu.Lock()
	defer p.observersMu.Unlock()

	p.observers.NotifyObservers(func(o Observer) {
		o.OnControlChange(channel, controller, value)
	})
}

func (p *Parser) notifyProgramChange(channel, program uint8) {
	p.observersMu.Lock()
	defer p.observersMu.Unlock()

	p.observers.NotifyObservers(func(o Observer) {
		o.OnProgramChange(channel, program)
	})
}

func (p *Parser) notifyChannelPressureChange(channel, value uint8) {
	p.observersMu.Lock()
	defer p.observersMu.Unlock()

	p.observers.NotifyObservers(func(o Observer) {
		o.OnChannelPressureChange(channel, value)
	})
}

func (p *Parser) notifyPitchBendChange(channel uint8, value uint16) {
	p.observersMu.Lock()
	defer p.observersMu.Unlock()

	p.observers.NotifyObservers(func(o Observer) {
		o.OnPitchBendChange(channel, value)
	})
}
