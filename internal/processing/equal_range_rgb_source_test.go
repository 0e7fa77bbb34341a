package processing

import (
	"testing"
)

func TestEqualRangeRgbSourceOverwritesWholeStrip(t *testing.T) {
	src := NewEqualRangeRgbSource()
	src.SetColor(Rgb{10, 20, 30})

	// Pre-existing contents are overwritten, not added to
	strip := Strip{{100, 100, 100}, {}, {1, 2, 3}}
	src.Execute(strip, NoteToLightMap{})

	for i, color := range strip {
		if color != (Rgb{10, 20, 30}) {
			t.Errorf("Light %d: expected (10,20,30), got %+v", i, color)
		}
	}
}

func TestEqualRangeRgbSourceActivationHasNoEffect(t *testing.T) {
	src := NewEqualRangeRgbSource()
	src.SetColor(Rgb{1, 2, 3})

	src.Activate()
	src.Deactivate()

	strip := make(Strip, 2)
	src.Execute(strip, NoteToLightMap{})
	if strip[0] != (Rgb{1, 2, 3}) {
		t.Errorf("Expected color to survive deactivation, got %+v", strip[0])
	}
}

func TestEqualRangeRgbSourceJsonRoundTrip(t *testing.T) {
	src := NewEqualRangeRgbSource()
	src.SetColor(Rgb{10, 20, 30})

	restored := NewEqualRangeRgbSource()
	restored.FromJSON(src.ToJSON())

	if restored.GetColor() != (Rgb{10, 20, 30}) {
		t.Errorf("Expected color to round-trip, got %+v", restored.GetColor())
	}
}
