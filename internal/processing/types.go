// Package processing implements the MIDI-to-light processing engine: RGB
// types, pluggable processing blocks, patches and the concert that owns them.
package processing

import (
	"strconv"
)

// Rgb is a single RGB color with 8-bit components.
type Rgb struct {
	R uint8
	G uint8
	B uint8
}

// Add returns the componentwise sum, saturating at 255.
func (c Rgb) Add(other Rgb) Rgb {
	return Rgb{
		R: saturatingAdd(c.R, other.R),
		G: saturatingAdd(c.G, other.G),
		B: saturatingAdd(c.B, other.B),
	}
}

// Subtract returns the componentwise difference, saturating at 0.
func (c Rgb) Subtract(other Rgb) Rgb {
	return Rgb{
		R: saturatingSubtract(c.R, other.R),
		G: saturatingSubtract(c.G, other.G),
		B: saturatingSubtract(c.B, other.B),
	}
}

// Multiply scales every component by a single factor, truncating toward zero
// and saturating to [0, 255].
func (c Rgb) Multiply(factor float32) Rgb {
	return Rgb{
		R: clampComponent(factor * float32(c.R)),
		G: clampComponent(factor * float32(c.G)),
		B: clampComponent(factor * float32(c.B)),
	}
}

// RgbFromFloat constructs a color from float components, clamping to [0, 255]
// and truncating.
func RgbFromFloat(r, g, b float32) Rgb {
	return Rgb{
		R: clampComponent(r),
		G: clampComponent(g),
		B: clampComponent(b),
	}
}

func saturatingAdd(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

func saturatingSubtract(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

func clampComponent(value float32) uint8 {
	if value <= 0 {
		return 0
	}
	if value >= 255 {
		return 255
	}
	return uint8(value)
}

// Strip is the ordered RGB data of an addressable LED strip, indexed from 0.
type Strip []Rgb

// NoteToLightMap maps MIDI note numbers to light indices.
type NoteToLightMap map[uint8]uint16

// MaxLightIndex returns the highest light index in the map and whether the
// map has any entries.
func (m NoteToLightMap) MaxLightIndex() (uint16, bool) {
	var highest uint16
	found := false
	for _, light := range m {
		if !found || light > highest {
			highest = light
		}
		found = true
	}
	return highest, found
}

// noteToLightMapToJSON converts a map to its JSON form: an object with
// stringified note numbers as keys.
func noteToLightMapToJSON(m NoteToLightMap) map[string]interface{} {
	converted := make(map[string]interface{}, len(m))
	for note, light := range m {
		converted[strconv.Itoa(int(note))] = light
	}
	return converted
}

// noteToLightMapFromJSON parses the JSON form back. Entries with malformed
// keys or values are skipped.
func noteToLightMapFromJSON(converted map[string]interface{}) NoteToLightMap {
	m := make(NoteToLightMap, len(converted))
	for key, value := range converted {
		note, err := strconv.Atoi(key)
		if err != nil || note < 0 || note > 255 {
			continue
		}
		switch v := value.(type) {
		case float64:
			m[uint8(note)] = uint16(v)
		case uint16:
			m[uint8(note)] = v
		case int:
			m[uint8(note)] = uint16(v)
		}
	}
	return m
}

// NoteState is the per-note record kept by note-driven sources.
type NoteState struct {
	// Pressed is true if an on event was received last, false after an off event.
	Pressed bool
	// Sounding is true while the note is pressed or held by the damper pedal.
	Sounding bool
	// PressDownVelocity is the velocity of the last note-on.
	PressDownVelocity uint8
	// NoteOnTime is the engine time stamp of the last note-on, in milliseconds.
	NoteOnTime uint32
}

// noteStateCount sizes the note-state array: 128 MIDI notes plus head room.
const noteStateCount = 256
