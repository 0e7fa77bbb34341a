package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"

	"midiglow/internal/debug"
)

// PortInput connects a system MIDI input port to a Parser. The port delivers
// complete raw messages; they are replayed byte-by-byte into the parser so
// every host shares one framing path.
//
// The process must have a gomidi driver linked in (the hosts import
// rtmididrv for its side effect).
type PortInput struct {
	parser *Parser
	stop   func()
	logger *debug.Logger
}

// ListPorts returns the names of all system MIDI input ports.
func ListPorts() []string {
	var names []string
	for _, in := range gomidi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// OpenPort starts listening on the named system port, feeding the parser.
func OpenPort(name string, parser *Parser, logger *debug.Logger) (*PortInput, error) {
	in, err := gomidi.FindInPort(name)
	if err != nil {
		return nil, fmt.Errorf("MIDI input port %q not found: %w", name, err)
	}

	handler := func(msg gomidi.Message, timestampms int32) {
		for _, value := range msg {
			parser.ProcessMidiByte(value)
		}
	}

	stop, err := gomidi.ListenTo(in, handler)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on MIDI port %q: %w", name, err)
	}

	if logger != nil {
		logger.LogMIDIf(debug.LogLevelInfo, "Listening on MIDI port %q", name)
	}

	return &PortInput{parser: parser, stop: stop, logger: logger}, nil
}

// Close stops listening on the port.
func (p *PortInput) Close() {
	if p.stop != nil {
		p.stop()
		p.stop = nil
		if p.logger != nil {
			p.logger.LogMIDIf(debug.LogLevelInfo, "MIDI port closed")
		}
	}
}
