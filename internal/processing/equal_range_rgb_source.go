package processing

import (
	"sync"

	"midiglow/internal/jsonhelper"
)

// JSON keys shared by color-carrying objects
const (
	rJSONKey = "r"
	gJSONKey = "g"
	bJSONKey = "b"
)

// EqualRangeRgbSource drives the whole strip with one constant color.
//
// Note that it overwrites the strip instead of adding to it, so it only
// behaves as a background when placed first in a chain.
type EqualRangeRgbSource struct {
	mu    sync.Mutex
	color Rgb
}

// NewEqualRangeRgbSource creates a source emitting black.
func NewEqualRangeRgbSource() *EqualRangeRgbSource {
	return &EqualRangeRgbSource{}
}

// Activate implements ProcessingBlock. The source has no transient state.
func (s *EqualRangeRgbSource) Activate() {
}

// Deactivate implements ProcessingBlock.
func (s *EqualRangeRgbSource) Deactivate() {
}

// Execute implements ProcessingBlock.
func (s *EqualRangeRgbSource) Execute(strip Strip, noteToLightMap NoteToLightMap) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range strip {
		strip[i] = s.color
	}
}

// GetColor returns the configured color.
func (s *EqualRangeRgbSource) GetColor() Rgb {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.color
}

// SetColor sets the color to drive the strip with.
func (s *EqualRangeRgbSource) SetColor(color Rgb) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.color = color
}

// ToJSON implements ProcessingBlock.
func (s *EqualRangeRgbSource) ToJSON() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		ObjectTypeKey: TypeNameEqualRangeRgbSource,
		rJSONKey:      s.color.R,
		gJSONKey:      s.color.G,
		bJSONKey:      s.color.B,
	}
}

// FromJSON implements ProcessingBlock.
func (s *EqualRangeRgbSource) FromJSON(converted map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	helper := jsonhelper.New("EqualRangeRgbSource", converted, nil)
	helper.GetUint8(rJSONKey, &s.color.R)
	helper.GetUint8(gJSONKey, &s.color.G)
	helper.GetUint8(bJSONKey, &s.color.B)
}

// Close implements ProcessingBlock. The source holds no subscriptions.
func (s *EqualRangeRgbSource) Close() {
}
