package processing

import (
	"sync"

	"midiglow/internal/jsonhelper"
)

// Decay envelope of an acoustic piano, approximated with two linear segments:
// a fast drop to half intensity followed by a long tail to silence.
const (
	fastDecayDurationMs = 1200
	slowDecayDurationMs = 13800
	fastDecayFactor     = 0.5
	slowDecayFactor     = 0.5
)

// PianoDecayRgbFunction scales a base color with a two-segment decay envelope
// and the note's press-down velocity.
type PianoDecayRgbFunction struct {
	mu    sync.Mutex
	color Rgb
}

// NewPianoDecayRgbFunction creates the function with the given base color.
func NewPianoDecayRgbFunction(color Rgb) *PianoDecayRgbFunction {
	return &PianoDecayRgbFunction{color: color}
}

// Calculate implements RgbFunction.
func (f *PianoDecayRgbFunction) Calculate(noteState NoteState, currentTime uint32) Rgb {
	if !noteState.Sounding {
		return Rgb{}
	}

	soundingTime := currentTime - noteState.NoteOnTime

	var timeProgress, decayFactor, startIntensityFactor float32
	if soundingTime < fastDecayDurationMs {
		timeProgress = float32(soundingTime) / float32(fastDecayDurationMs)
		decayFactor = fastDecayFactor
		startIntensityFactor = 1.0
	} else {
		// timeProgress restarts from 0 here, so 0 means 1200ms after press down
		timeProgress = float32(soundingTime-fastDecayDurationMs) / float32(slowDecayDurationMs)
		decayFactor = slowDecayFactor
		// Continue at the intensity where the first segment left off
		startIntensityFactor = 1.0 - fastDecayFactor
	}

	intensityFactor := startIntensityFactor - timeProgress*decayFactor

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.color.Multiply(float32(noteState.PressDownVelocity) / 127.0 * intensityFactor)
}

// SetColor sets the base color.
func (f *PianoDecayRgbFunction) SetColor(color Rgb) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.color = color
}

// GetColor returns the base color.
func (f *PianoDecayRgbFunction) GetColor() Rgb {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.color
}

// ToJSON implements RgbFunction.
func (f *PianoDecayRgbFunction) ToJSON() map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	return map[string]interface{}{
		ObjectTypeKey: TypeNamePianoDecayRgbFunction,
		rJSONKey:      f.color.R,
		gJSONKey:      f.color.G,
		bJSONKey:      f.color.B,
	}
}

// FromJSON implements RgbFunction.
func (f *PianoDecayRgbFunction) FromJSON(converted map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()

	helper := jsonhelper.New("PianoDecayRgbFunction", converted, nil)
	helper.GetUint8(rJSONKey, &f.color.R)
	helper.GetUint8(gJSONKey, &f.color.G)
	helper.GetUint8(bJSONKey, &f.color.B)
}
