package processing

import (
	"sync"

	"midiglow/internal/common"
	"midiglow/internal/midi"
)

// fakeMidiInput stands in for the parser in engine tests. Events fired on it
// reach subscribers synchronously, like real MIDI callbacks.
type fakeMidiInput struct {
	mu        sync.Mutex
	observers common.ObserverList[midi.Observer]
}

func (f *fakeMidiInput) Subscribe(observer midi.Observer) common.SubscriptionToken {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.observers.Subscribe(observer)
}

func (f *fakeMidiInput) Unsubscribe(token common.SubscriptionToken) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.observers.Unsubscribe(token)
}

func (f *fakeMidiInput) noteChange(channel, pitch, velocity uint8, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.observers.NotifyObservers(func(o midi.Observer) {
		o.OnNoteChange(channel, pitch, velocity, on)
	})
}

func (f *fakeMidiInput) controlChange(channel, controller, value uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.observers.NotifyObservers(func(o midi.Observer) {
		o.OnControlChange(channel, controller, value)
	})
}

func (f *fakeMidiInput) programChange(channel, program uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.observers.NotifyObservers(func(o midi.Observer) {
		o.OnProgramChange(channel, program)
	})
}

// newTestFactory wires a factory with a fake input and settable time.
func newTestFactory() (*ProcessingBlockFactory, *fakeMidiInput, *common.FakeTime) {
	input := &fakeMidiInput{}
	time := &common.FakeTime{}
	factory := NewProcessingBlockFactory(input, NewRgbFunctionFactory(nil), time, nil)
	return factory, input, time
}

// identityMap builds a 1-to-1 note-to-light map for notes 0..count-1.
func identityMap(count int) NoteToLightMap {
	m := make(NoteToLightMap, count)
	for i := 0; i < count; i++ {
		m[uint8(i)] = uint16(i)
	}
	return m
}
