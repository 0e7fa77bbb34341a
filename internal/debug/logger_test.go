package debug

import (
	"strings"
	"testing"
)

func TestLoggerStoresEntries(t *testing.T) {
	logger := NewLogger(100)

	logger.LogConcertf(LogLevelInfo, "activating patch '%s'", "whiteOnBlue")
	logger.Shutdown()

	entries := logger.GetEntries()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Component != ComponentConcert {
		t.Errorf("Expected component %s, got %s", ComponentConcert, entries[0].Component)
	}
	if !strings.Contains(entries[0].Message, "whiteOnBlue") {
		t.Errorf("Expected formatted message, got %q", entries[0].Message)
	}
}

func TestLoggerFiltersDisabledComponents(t *testing.T) {
	logger := NewLogger(100)
	logger.SetComponentEnabled(ComponentMIDI, false)

	logger.LogMIDIf(LogLevelInfo, "dropped")
	logger.LogSystemf(LogLevelInfo, "kept")
	logger.Shutdown()

	entries := logger.GetEntries()
	if len(entries) != 1 || entries[0].Component != ComponentSystem {
		t.Errorf("Expected only the system entry, got %v", entries)
	}
}

func TestLoggerFiltersVerboseLevels(t *testing.T) {
	logger := NewLogger(100)
	// Default ceiling is Info; Debug and Trace are dropped

	logger.LogSystemf(LogLevelDebug, "dropped")
	logger.LogSystemf(LogLevelError, "kept")
	logger.Shutdown()

	entries := logger.GetEntries()
	if len(entries) != 1 || entries[0].Level != LogLevelError {
		t.Errorf("Expected only the error entry, got %v", entries)
	}
}

func TestLoggerCircularBufferKeepsNewest(t *testing.T) {
	logger := NewLogger(100)

	for i := 0; i < 150; i++ {
		logger.Logf(ComponentSystem, LogLevelInfo, "entry %d", i)
	}
	logger.Shutdown()

	entries := logger.GetEntries()
	if len(entries) != 100 {
		t.Fatalf("Expected 100 entries, got %d", len(entries))
	}
	if entries[0].Message != "entry 50" {
		t.Errorf("Expected the oldest surviving entry to be 'entry 50', got %q", entries[0].Message)
	}
	if entries[99].Message != "entry 149" {
		t.Errorf("Expected the newest entry to be 'entry 149', got %q", entries[99].Message)
	}
}

func TestLoggerRecentEntries(t *testing.T) {
	logger := NewLogger(100)

	for i := 0; i < 10; i++ {
		logger.Logf(ComponentSystem, LogLevelInfo, "entry %d", i)
	}
	logger.Shutdown()

	recent := logger.GetRecentEntries(3)
	if len(recent) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(recent))
	}
	if recent[2].Message != "entry 9" {
		t.Errorf("Expected the newest entry last, got %q", recent[2].Message)
	}
}

func TestLogLevelStrings(t *testing.T) {
	if LogLevelWarning.String() != "WARNING" || LogLevelTrace.String() != "TRACE" {
		t.Error("Unexpected log level strings")
	}
}
