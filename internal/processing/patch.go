package processing

import (
	"sync"

	"midiglow/internal/jsonhelper"
	"midiglow/internal/midi"
)

// DefaultPatchName is the name of a freshly created patch.
const DefaultPatchName = "Untitled Patch"

// Patch wraps a processing chain with metadata: a name and optional
// (bank, program) coordinates that make it addressable by MIDI program
// changes.
type Patch struct {
	mu sync.Mutex

	bank              uint16
	program           uint8
	bankAndProgramSet bool
	name              string

	chain   *ProcessingChain
	factory *ProcessingBlockFactory
}

// NewPatch creates a patch with an empty chain and no bank/program binding.
func NewPatch(factory *ProcessingBlockFactory) *Patch {
	return &Patch{
		name:    DefaultPatchName,
		chain:   factory.CreateProcessingChain(),
		factory: factory,
	}
}

// GetProcessingChain returns the wrapped chain.
func (p *Patch) GetProcessingChain() *ProcessingChain {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.chain
}

// Activate implements ProcessingBlock by delegating to the chain.
func (p *Patch) Activate() {
	p.chain.Activate()
}

// Deactivate implements ProcessingBlock by delegating to the chain.
func (p *Patch) Deactivate() {
	p.chain.Deactivate()
}

// Execute implements ProcessingBlock by delegating to the chain.
func (p *Patch) Execute(strip Strip, noteToLightMap NoteToLightMap) {
	p.chain.Execute(strip, noteToLightMap)
}

// GetBank returns the stored bank number.
func (p *Patch) GetBank() uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.bank
}

// SetBank stores the bank number, clipped to the 14-bit range a Bank Select
// pair can form.
func (p *Patch) SetBank(bank uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if bank > midi.MaxBank {
		bank = midi.MaxBank
	}
	p.bank = bank
}

// GetProgram returns the stored program number.
func (p *Patch) GetProgram() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.program
}

// SetProgram stores the program number (clipped to 0..127) and marks the
// patch addressable.
func (p *Patch) SetProgram(program uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if program > 127 {
		program = 127
	}
	p.program = program
	p.bankAndProgramSet = true
}

// HasBankAndProgram returns whether the patch is addressable.
func (p *Patch) HasBankAndProgram() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.bankAndProgramSet
}

// ClearBankAndProgram makes the patch unaddressable without touching the
// stored bank and program values.
func (p *Patch) ClearBankAndProgram() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.bankAndProgramSet = false
}

// GetName returns the patch name.
func (p *Patch) GetName() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.name
}

// SetName sets the patch name.
func (p *Patch) SetName(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.name = name
}

// JSON keys
const (
	hasBankAndProgramJSONKey = "hasBankAndProgram"
	bankJSONKey              = "bank"
	programJSONKey           = "program"
	nameJSONKey              = "name"
)

// ToJSON implements ProcessingBlock.
func (p *Patch) ToJSON() map[string]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	return map[string]interface{}{
		ObjectTypeKey:            TypeNamePatch,
		hasBankAndProgramJSONKey: p.bankAndProgramSet,
		bankJSONKey:              p.bank,
		programJSONKey:           p.program,
		nameJSONKey:              p.name,
		processingChainJSONKey:   p.chain.ToJSON(),
	}
}

// FromJSON implements ProcessingBlock. A missing chain resets to a fresh
// empty one.
func (p *Patch) FromJSON(converted map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	helper := jsonhelper.New("Patch", converted, p.factory.logger)
	helper.GetBool(hasBankAndProgramJSONKey, &p.bankAndProgramSet)
	helper.GetUint8(programJSONKey, &p.program)
	helper.GetUint16(bankJSONKey, &p.bank)
	helper.GetString(nameJSONKey, &p.name)

	var convertedChain map[string]interface{}
	if helper.GetObject(processingChainJSONKey, &convertedChain) {
		p.chain.FromJSON(convertedChain)
	} else {
		// Reset to default
		p.chain.Close()
		p.chain = p.factory.CreateProcessingChain()
	}
}

// Close implements ProcessingBlock.
func (p *Patch) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.chain.Close()
}
