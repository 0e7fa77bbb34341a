package processing

import (
	"testing"
)

func TestPatchDefaults(t *testing.T) {
	factory, _, _ := newTestFactory()
	patch := NewPatch(factory)

	if patch.GetName() != "Untitled Patch" {
		t.Errorf("Expected default name 'Untitled Patch', got %q", patch.GetName())
	}
	if patch.HasBankAndProgram() {
		t.Error("Expected a fresh patch to have no bank and program")
	}
	if patch.GetProcessingChain() == nil {
		t.Error("Expected a fresh patch to own a chain")
	}
}

func TestPatchSetProgramMarksAddressable(t *testing.T) {
	factory, _, _ := newTestFactory()
	patch := NewPatch(factory)

	patch.SetBank(2)
	patch.SetProgram(3)

	if !patch.HasBankAndProgram() {
		t.Error("Expected SetProgram to mark the patch addressable")
	}
	if patch.GetBank() != 2 || patch.GetProgram() != 3 {
		t.Errorf("Expected bank 2 program 3, got %d/%d", patch.GetBank(), patch.GetProgram())
	}
}

func TestPatchClearBankAndProgramKeepsValues(t *testing.T) {
	factory, _, _ := newTestFactory()
	patch := NewPatch(factory)

	patch.SetBank(2)
	patch.SetProgram(3)
	patch.ClearBankAndProgram()

	if patch.HasBankAndProgram() {
		t.Error("Expected the patch to be unaddressable after clearing")
	}
	if patch.GetBank() != 2 || patch.GetProgram() != 3 {
		t.Errorf("Expected stored values untouched, got %d/%d", patch.GetBank(), patch.GetProgram())
	}
}

func TestPatchSetBankAndProgramClip(t *testing.T) {
	factory, _, _ := newTestFactory()
	patch := NewPatch(factory)

	patch.SetBank(20000)
	patch.SetProgram(255)

	if patch.GetBank() != 16383 {
		t.Errorf("Expected bank clipped to 16383, got %d", patch.GetBank())
	}
	if patch.GetProgram() != 127 {
		t.Errorf("Expected program clipped to 127, got %d", patch.GetProgram())
	}
}

func TestPatchDelegatesToChain(t *testing.T) {
	factory, _, _ := newTestFactory()
	patch := NewPatch(factory)

	block := &countingBlock{color: Rgb{5, 5, 5}}
	patch.GetProcessingChain().InsertBlock(block)

	patch.Activate()
	if !block.active {
		t.Error("Expected activation to reach the chain's blocks")
	}

	strip := make(Strip, 2)
	patch.Execute(strip, NoteToLightMap{})
	if block.executed != 1 {
		t.Errorf("Expected 1 execution, got %d", block.executed)
	}
	if strip[0] != (Rgb{5, 5, 5}) {
		t.Errorf("Expected the block's contribution, got %+v", strip[0])
	}

	patch.Deactivate()
	if block.active {
		t.Error("Expected deactivation to reach the chain's blocks")
	}
}

func TestPatchJsonRoundTrip(t *testing.T) {
	factory, _, _ := newTestFactory()

	patch := NewPatch(factory)
	patch.SetName("whiteOnBlue")
	patch.SetBank(2)
	patch.SetProgram(3)
	src := NewEqualRangeRgbSource()
	src.SetColor(Rgb{0, 0, 255})
	patch.GetProcessingChain().InsertBlock(src)

	restored := factory.CreatePatchFromJSON(patch.ToJSON())

	if restored.GetName() != "whiteOnBlue" {
		t.Errorf("Expected name to round-trip, got %q", restored.GetName())
	}
	if !restored.HasBankAndProgram() || restored.GetBank() != 2 || restored.GetProgram() != 3 {
		t.Error("Expected bank and program to round-trip")
	}
	if restored.GetProcessingChain().BlockCount() != 1 {
		t.Errorf("Expected 1 block in the restored chain, got %d", restored.GetProcessingChain().BlockCount())
	}
}

func TestPatchFromJsonWithoutChainResetsToEmpty(t *testing.T) {
	factory, _, _ := newTestFactory()

	patch := NewPatch(factory)
	patch.GetProcessingChain().InsertBlock(&countingBlock{})

	patch.FromJSON(map[string]interface{}{
		ObjectTypeKey: TypeNamePatch,
		"name":        "bare",
	})

	if patch.GetName() != "bare" {
		t.Errorf("Expected name 'bare', got %q", patch.GetName())
	}
	if patch.GetProcessingChain().BlockCount() != 0 {
		t.Errorf("Expected a fresh empty chain, got %d blocks", patch.GetProcessingChain().BlockCount())
	}
}
