// Package midi reconstructs MIDI channel-voice messages from a raw byte
// stream and dispatches them to subscribed observers.
package midi

import (
	"midiglow/internal/common"
)

// Channel-voice status nibbles (high nibble of the status byte)
const (
	StatusNoteOff               uint8 = 0x80
	StatusNoteOn                uint8 = 0x90
	StatusControlChange         uint8 = 0xB0
	StatusProgramChange         uint8 = 0xC0
	StatusChannelPressureChange uint8 = 0xD0
	StatusPitchBendChange       uint8 = 0xE0
)

// Controller numbers with engine semantics
const (
	ControllerBankSelectMSB uint8 = 0x00
	ControllerBankSelectLSB uint8 = 0x20
	ControllerDamperPedal   uint8 = 0x40
)

// NumNotes is the number of notes defined by MIDI.
const NumNotes = 128

// NumChannels is the number of channels defined by MIDI.
const NumChannels = 16

// MaxBank is the largest 14-bit bank number a Bank Select pair can form.
const MaxBank uint16 = 0x3FFF

// Observer receives decoded channel-voice events. Callbacks may fire on any
// goroutine; implementations are expected to defer real work to a scheduler.
type Observer interface {
	OnNoteChange(channel uint8, pitch uint8, velocity uint8, on bool)
	OnControlChange(channel uint8, controller uint8, value uint8)
	OnProgramChange(channel uint8, program uint8)
	OnChannelPressureChange(channel uint8, value uint8)
	OnPitchBendChange(channel uint8, value uint16)
}

// Input is the subscription surface of a MIDI event source.
type Input interface {
	Subscribe(observer Observer) common.SubscriptionToken
	Unsubscribe(token common.SubscriptionToken)
}
