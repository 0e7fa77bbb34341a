package model

import "testing"

func TestSettersNotifyObservers(t *testing.T) {
	settings := NewSystemSettingsModel()

	updates := 0
	settings.Subscribe(func() { updates++ })

	settings.SetMidiPortName("Digital Piano")
	settings.SetFrameRate(60)

	if updates != 2 {
		t.Errorf("Expected 2 updates, got %d", updates)
	}
	if settings.GetMidiPortName() != "Digital Piano" {
		t.Errorf("Expected port name to stick, got %q", settings.GetMidiPortName())
	}
	if settings.GetFrameRate() != 60 {
		t.Errorf("Expected frame rate 60, got %d", settings.GetFrameRate())
	}
}

func TestObserverMayCallGettersWithoutDeadlock(t *testing.T) {
	settings := NewSystemSettingsModel()

	var seen string
	settings.Subscribe(func() {
		seen = settings.GetMidiPortName()
	})

	settings.SetMidiPortName("Stage Piano")
	if seen != "Stage Piano" {
		t.Errorf("Expected observer to read the new value, got %q", seen)
	}
}

func TestUnsubscribeStopsUpdates(t *testing.T) {
	settings := NewSystemSettingsModel()

	updates := 0
	token := settings.Subscribe(func() { updates++ })
	settings.Unsubscribe(token)

	settings.SetFrameRate(90)
	if updates != 0 {
		t.Errorf("Expected no updates after unsubscribe, got %d", updates)
	}
}

func TestFrameRateFallsBackToDefault(t *testing.T) {
	settings := NewSystemSettingsModel()

	settings.SetFrameRate(0)
	if settings.GetFrameRate() != DefaultFrameRate {
		t.Errorf("Expected fallback to %d, got %d", DefaultFrameRate, settings.GetFrameRate())
	}
}
