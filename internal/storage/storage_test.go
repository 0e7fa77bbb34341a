package storage

import (
	"os"
	"path/filepath"
	"testing"

	"midiglow/internal/common"
	"midiglow/internal/midi"
	"midiglow/internal/processing"
)

type storeTestInput struct {
	observers common.ObserverList[midi.Observer]
}

func (f *storeTestInput) Subscribe(o midi.Observer) common.SubscriptionToken {
	return f.observers.Subscribe(o)
}

func (f *storeTestInput) Unsubscribe(token common.SubscriptionToken) {
	f.observers.Unsubscribe(token)
}

func newStoreTestConcert() *processing.Concert {
	input := &storeTestInput{}
	factory := processing.NewProcessingBlockFactory(input, processing.NewRgbFunctionFactory(nil), common.NewMillisecondClock(), nil)
	return processing.NewConcert(input, factory, nil)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concert.json")
	store := NewConcertStore(path, nil)

	concert := newStoreTestConcert()
	concert.SetListeningToProgramChange(true)
	concert.SetCurrentBank(300)
	concert.SetNoteToLightMap(processing.NoteToLightMap{60: 0, 61: 1})
	patch := concert.GetPatch(concert.AddPatch())
	patch.SetName("stage left")

	if err := store.Save(concert); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	restored := newStoreTestConcert()
	loaded, err := store.Load(restored)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded {
		t.Fatal("Expected Load to find the file")
	}

	if !restored.IsListeningToProgramChange() || restored.GetCurrentBank() != 300 {
		t.Error("Expected settings to round-trip")
	}
	if restored.Size() != 1 || restored.GetPatch(0).GetName() != "stage left" {
		t.Error("Expected the patch to round-trip")
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	store := NewConcertStore(filepath.Join(t.TempDir(), "missing.json"), nil)

	loaded, err := store.Load(newStoreTestConcert())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if loaded {
		t.Error("Expected Load to report absence")
	}
}

func TestLoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concert.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewConcertStore(path, nil)
	if _, err := store.Load(newStoreTestConcert()); err == nil {
		t.Error("Expected an error for a corrupt file")
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewConcertStore(filepath.Join(dir, "concert.json"), nil)

	if err := store.Save(newStoreTestConcert()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "concert.json" {
		t.Errorf("Expected only concert.json, got %v", entries)
	}
}

func TestAutosaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concert.json")
	store := NewConcertStore(path, nil)

	concert := newStoreTestConcert()
	concert.SetCurrentBank(7)
	store.WriteAutosave(concert)

	restored := newStoreTestConcert()
	recovered, err := store.RecoverAutosave(restored)
	if err != nil {
		t.Fatalf("RecoverAutosave failed: %v", err)
	}
	if !recovered {
		t.Fatal("Expected the journal to be found")
	}
	if restored.GetCurrentBank() != 7 {
		t.Errorf("Expected bank 7 from the journal, got %d", restored.GetCurrentBank())
	}

	store.ClearAutosave()
	if recovered, _ := store.RecoverAutosave(newStoreTestConcert()); recovered {
		t.Error("Expected no journal after ClearAutosave")
	}
}
