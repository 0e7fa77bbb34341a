package midi

import (
	"midiglow/internal/common"
	"midiglow/internal/debug"
)

// MessageLogger logs every decoded MIDI message it observes.
type MessageLogger struct {
	input  Input
	token  common.SubscriptionToken
	logger *debug.Logger
}

// NewMessageLogger subscribes a logger to the given input.
func NewMessageLogger(input Input, logger *debug.Logger) *MessageLogger {
	l := &MessageLogger{input: input, logger: logger}
	l.token = input.Subscribe(l)
	return l
}

// Close unsubscribes from the input.
func (l *MessageLogger) Close() {
	l.input.Unsubscribe(l.token)
}

func (l *MessageLogger) OnNoteChange(channel, pitch, velocity uint8, on bool) {
	state := "OFF"
	if on {
		state = "ON"
	}
	l.logger.LogMIDIf(debug.LogLevelInfo, "%3s chan %2d pitch %3d vel %3d", state, channel, pitch, velocity)
}

func (l *MessageLogger) OnControlChange(channel, controller, value uint8) {
	l.logger.LogMIDIf(debug.LogLevelInfo, "CON chan %2d controller %3d val %3d", channel, controller, value)
}

func (l *MessageLogger) OnProgramChange(channel, program uint8) {
	l.logger.LogMIDIf(debug.LogLevelInfo, "PRG chan %2d num %2d", channel, program)
}

func (l *MessageLogger) OnChannelPressureChange(channel, value uint8) {
	l.logger.LogMIDIf(debug.LogLevelInfo, "CHP chan %2d val %2d", channel, value)
}

func (l *MessageLogger) OnPitchBendChange(channel uint8, value uint16) {
	l.logger.LogMIDIf(debug.LogLevelInfo, " PB chan %2d val %5d", channel, value)
}
