package render

import (
	"bytes"
	"testing"

	"midiglow/internal/processing"
)

func TestEncodeWs2801PacksRgbTriplets(t *testing.T) {
	strip := processing.Strip{{1, 2, 3}, {4, 5, 6}}

	frame := EncodeWs2801(strip)

	want := []byte{1, 2, 3, 4, 5, 6}
	if !bytes.Equal(frame, want) {
		t.Errorf("Expected % X, got % X", want, frame)
	}
}

func TestEncodeWs2801EmptyStrip(t *testing.T) {
	if frame := EncodeWs2801(nil); len(frame) != 0 {
		t.Errorf("Expected an empty frame, got % X", frame)
	}
}

func TestWs2801OutputWritesEachFrame(t *testing.T) {
	var sink bytes.Buffer
	output := NewWs2801Output(&sink, nil)

	output.OnStripUpdate(processing.Strip{{255, 0, 0}})
	output.OnStripUpdate(processing.Strip{{0, 255, 0}})

	want := []byte{255, 0, 0, 0, 255, 0}
	if !bytes.Equal(sink.Bytes(), want) {
		t.Errorf("Expected % X, got % X", want, sink.Bytes())
	}
}
