package processing

import (
	"sync"

	"midiglow/internal/common"
	"midiglow/internal/jsonhelper"
	"midiglow/internal/midi"
)

// NoteRgbSource generates RGB data from note on/off events on one MIDI
// channel, optionally honouring the damper pedal. The MIDI callbacks only
// enqueue work; note states are mutated when the render goroutine drains the
// scheduler inside Execute.
type NoteRgbSource struct {
	mu sync.Mutex

	active       bool
	usingPedal   bool
	channel      uint8
	pedalPressed bool
	noteStates   [noteStateCount]NoteState

	rgbFunction RgbFunction

	scheduler common.Scheduler

	rgbFunctionFactory *RgbFunctionFactory
	input              midi.Input
	token              common.SubscriptionToken
	time               common.Time
}

// NewNoteRgbSource creates a source subscribed to the given MIDI input.
// The default RGB function is the full-white linear ramp.
func NewNoteRgbSource(input midi.Input, rgbFunctionFactory *RgbFunctionFactory, time common.Time) *NoteRgbSource {
	s := &NoteRgbSource{
		rgbFunction:        NewFullWhiteLinearRgbFunction(),
		rgbFunctionFactory: rgbFunctionFactory,
		input:              input,
		time:               time,
	}
	s.token = input.Subscribe(s)
	return s
}

// Activate implements ProcessingBlock.
func (s *NoteRgbSource) Activate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = true
}

// Deactivate implements ProcessingBlock. Remaining events are handled first,
// then every note is forced silent so nothing stays lit.
func (s *NoteRgbSource) Deactivate() {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()

	// Handle remaining events, then make sure no notes stay active
	s.scheduler.ExecuteAll()

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.noteStates {
		s.noteStates[i].Pressed = false
		s.noteStates[i].Sounding = false
	}
}

// Execute implements ProcessingBlock. Pending state changes are applied
// before rendering.
func (s *NoteRgbSource) Execute(strip Strip, noteToLightMap NoteToLightMap) {
	s.scheduler.ExecuteAll()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rgbFunction == nil {
		return
	}

	now := s.time.Milliseconds()
	for note, light := range noteToLightMap {
		if int(light) < len(strip) {
			strip[light] = strip[light].Add(s.rgbFunction.Calculate(s.noteStates[note], now))
		}
	}
}

// OnNoteChange implements midi.Observer.
func (s *NoteRgbSource) OnNoteChange(channel, pitch, velocity uint8, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}

	s.scheduler.Schedule(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if channel != s.channel {
			return
		}

		if on {
			s.noteStates[pitch].PressDownVelocity = velocity
			s.noteStates[pitch].NoteOnTime = s.time.Milliseconds()
			s.noteStates[pitch].Pressed = true
			s.noteStates[pitch].Sounding = true
		} else {
			s.noteStates[pitch].Pressed = false
			if !s.pedalPressed {
				s.noteStates[pitch].Sounding = false
			}
		}
	})
}

// OnControlChange implements midi.Observer. Only the damper pedal matters;
// other controllers return before touching the scheduler.
func (s *NoteRgbSource) OnControlChange(channel, controller, value uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}

	if controller != midi.ControllerDamperPedal {
		return
	}

	// Channel check must be deferred as it reads a member
	s.scheduler.Schedule(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if channel != s.channel || !s.usingPedal {
			return
		}

		s.pedalPressed = value >= 64
		if !s.pedalPressed {
			// Stop all notes which are sounding due to pedal only
			for note := 0; note < midi.NumNotes; note++ {
				if !s.noteStates[note].Pressed {
					s.noteStates[note].Sounding = false
				}
			}
		}
	})
}

// OnProgramChange implements midi.Observer.
func (s *NoteRgbSource) OnProgramChange(channel, program uint8) {
	// ignore
}

// OnChannelPressureChange implements midi.Observer.
func (s *NoteRgbSource) OnChannelPressureChange(channel, value uint8) {
	// ignore
}

// OnPitchBendChange implements midi.Observer.
func (s *NoteRgbSource) OnPitchBendChange(channel uint8, value uint16) {
	// ignore
}

// GetChannel returns the MIDI channel being listened to.
func (s *NoteRgbSource) GetChannel() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.channel
}

// SetChannel sets the MIDI channel to listen to, clipped to the valid range.
func (s *NoteRgbSource) SetChannel(channel uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if channel > midi.NumChannels-1 {
		channel = midi.NumChannels - 1
	}
	s.channel = channel
}

// IsUsingPedal returns whether damper pedal events are honoured.
func (s *NoteRgbSource) IsUsingPedal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.usingPedal
}

// SetUsingPedal sets whether damper pedal events are honoured.
func (s *NoteRgbSource) SetUsingPedal(usingPedal bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.usingPedal = usingPedal
}

// SetRgbFunction replaces the owned RGB function.
func (s *NoteRgbSource) SetRgbFunction(rgbFunction RgbFunction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rgbFunction = rgbFunction
}

// JSON keys
const (
	usingPedalJSONKey  = "usingPedal"
	channelJSONKey     = "channel"
	rgbFunctionJSONKey = "rgbFunction"
)

// ToJSON implements ProcessingBlock.
func (s *NoteRgbSource) ToJSON() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	converted := map[string]interface{}{
		ObjectTypeKey:     TypeNameNoteRgbSource,
		usingPedalJSONKey: s.usingPedal,
		channelJSONKey:    s.channel,
	}
	if s.rgbFunction != nil {
		converted[rgbFunctionJSONKey] = s.rgbFunction.ToJSON()
	}

	return converted
}

// FromJSON implements ProcessingBlock.
func (s *NoteRgbSource) FromJSON(converted map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	helper := jsonhelper.New("NoteRgbSource", converted, nil)
	helper.GetBool(usingPedalJSONKey, &s.usingPedal)
	helper.GetUint8(channelJSONKey, &s.channel)

	var convertedRgbFunction map[string]interface{}
	if helper.GetObject(rgbFunctionJSONKey, &convertedRgbFunction) {
		if rgbFunction := s.rgbFunctionFactory.CreateRgbFunction(convertedRgbFunction); rgbFunction != nil {
			s.rgbFunction = rgbFunction
		}
	}
}

// Close implements ProcessingBlock.
func (s *NoteRgbSource) Close() {
	s.input.Unsubscribe(s.token)
}
