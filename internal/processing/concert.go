package processing

import (
	"sync"

	"midiglow/internal/common"
	"midiglow/internal/debug"
	"midiglow/internal/jsonhelper"
	"midiglow/internal/midi"
)

// PatchPosition identifies a patch by its position in the concert.
type PatchPosition int

// InvalidPatchPosition marks the absence of a patch.
const InvalidPatchPosition PatchPosition = -1

// Observer receives rendered frames. The strip is only valid for the
// duration of the callback; observers must not call back into mutating
// concert operations.
type Observer interface {
	OnStripUpdate(strip Strip)
}

// Concert is the top-level owner of the processing engine: the patch
// collection, the note-to-light map, the strip buffer and the MIDI-driven
// active-patch selector. At most one patch is active at any time.
//
// MIDI callbacks defer their work to the concert's scheduler; Execute drains
// it on the render goroutine, so all state transitions are serialised there
// in arrival order.
type Concert struct {
	mu sync.Mutex

	patches             []*Patch
	activePatchPosition PatchPosition

	noteToLightMap NoteToLightMap
	strip          Strip

	listeningToProgramChange bool
	programChangeChannel     uint8
	currentBank              uint16

	scheduler common.Scheduler
	observers common.ObserverList[Observer]

	input   midi.Input
	token   common.SubscriptionToken
	factory *ProcessingBlockFactory
	logger  *debug.Logger
}

// NewConcert creates an empty concert subscribed to the given MIDI input.
func NewConcert(input midi.Input, factory *ProcessingBlockFactory, logger *debug.Logger) *Concert {
	c := &Concert{
		activePatchPosition: InvalidPatchPosition,
		noteToLightMap:      NoteToLightMap{},
		input:               input,
		factory:             factory,
		logger:              logger,
	}
	c.token = input.Subscribe(c)
	return c
}

// Close unsubscribes from the MIDI input and closes every patch.
func (c *Concert) Close() {
	c.input.Unsubscribe(c.token)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.closePatches()
}

// Size returns the number of patches.
func (c *Concert) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.patches)
}

// AddPatch factory-creates an empty patch, appends it and returns its
// position. The first patch added to a concert is activated.
func (c *Concert) AddPatch() PatchPosition {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.addPatchInternal(c.factory.CreatePatch())
}

// AddExistingPatch takes ownership of an externally constructed patch.
func (c *Concert) AddExistingPatch(patch *Patch) PatchPosition {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.addPatchInternal(patch)
}

func (c *Concert) addPatchInternal(patch *Patch) PatchPosition {
	c.patches = append(c.patches, patch)

	if len(c.patches) == 1 {
		// First patch. Activate it.
		patch.Activate()
		c.activePatchPosition = 0
	}

	return PatchPosition(len(c.patches) - 1)
}

// GetPatch returns the patch at the given position, or nil.
func (c *Concert) GetPatch(position PatchPosition) *Patch {
	c.mu.Lock()
	defer c.mu.Unlock()

	if position < 0 || int(position) >= len(c.patches) {
		return nil
	}

	return c.patches[position]
}

// RemovePatch removes and closes the patch at the given position. If the
// removed patch was active, no patch is active afterwards.
func (c *Concert) RemovePatch(position PatchPosition) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if position < 0 || int(position) >= len(c.patches) {
		return false
	}

	patch := c.patches[position]
	if position == c.activePatchPosition {
		patch.Deactivate()
		c.activePatchPosition = InvalidPatchPosition
	} else if position < c.activePatchPosition {
		c.activePatchPosition--
	}
	patch.Close()

	c.patches = append(c.patches[:position], c.patches[position+1:]...)
	return true
}

// GetActivePatchPosition returns the position of the active patch, or
// InvalidPatchPosition.
func (c *Concert) GetActivePatchPosition() PatchPosition {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.activePatchPosition
}

// GetNoteToLightMap returns a copy of the note-to-light map.
func (c *Concert) GetNoteToLightMap() NoteToLightMap {
	c.mu.Lock()
	defer c.mu.Unlock()

	copied := make(NoteToLightMap, len(c.noteToLightMap))
	for note, light := range c.noteToLightMap {
		copied[note] = light
	}
	return copied
}

// SetNoteToLightMap replaces the map and extends the strip so every mapped
// light fits.
func (c *Concert) SetNoteToLightMap(noteToLightMap NoteToLightMap) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.noteToLightMap = noteToLightMap
	c.createMinimumAmountOfLights()
}

// createMinimumAmountOfLights extends the strip to fit every mapped light.
// The strip never shrinks.
func (c *Concert) createMinimumAmountOfLights() {
	highest, found := c.noteToLightMap.MaxLightIndex()
	if !found {
		return
	}

	minimum := int(highest) + 1
	for len(c.strip) < minimum {
		c.strip = append(c.strip, Rgb{})
	}
}

// StripSize returns the current strip length.
func (c *Concert) StripSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.strip)
}

// IsListeningToProgramChange returns whether program changes select patches.
func (c *Concert) IsListeningToProgramChange() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.listeningToProgramChange
}

// SetListeningToProgramChange sets whether program changes select patches.
func (c *Concert) SetListeningToProgramChange(listening bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listeningToProgramChange = listening
}

// GetProgramChangeChannel returns the channel program changes are accepted on.
func (c *Concert) GetProgramChangeChannel() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.programChangeChannel
}

// SetProgramChangeChannel sets the channel program changes are accepted on,
// clipped to the valid range.
func (c *Concert) SetProgramChangeChannel(channel uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if channel > midi.NumChannels-1 {
		channel = midi.NumChannels - 1
	}
	c.programChangeChannel = channel
}

// GetCurrentBank returns the current 14-bit bank number.
func (c *Concert) GetCurrentBank() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.currentBank
}

// SetCurrentBank sets the current bank number, clipped to 14 bits.
func (c *Concert) SetCurrentBank(bank uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if bank > midi.MaxBank {
		bank = midi.MaxBank
	}
	c.currentBank = bank
}

// Execute applies pending MIDI-driven state changes, renders a frame with the
// active patch and broadcasts it to the frame observers.
func (c *Concert) Execute() {
	c.scheduler.ExecuteAll()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.activePatchPosition != InvalidPatchPosition {
		c.patches[c.activePatchPosition].Execute(c.strip, c.noteToLightMap)

		c.observers.NotifyObservers(func(observer Observer) {
			observer.OnStripUpdate(c.strip)
		})
	}
}

// Subscribe registers a frame observer.
func (c *Concert) Subscribe(observer Observer) common.SubscriptionToken {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.observers.Subscribe(observer)
}

// Unsubscribe cancels a frame observer subscription.
func (c *Concert) Unsubscribe(token common.SubscriptionToken) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.observers.Unsubscribe(token)
}

// OnNoteChange implements midi.Observer.
func (c *Concert) OnNoteChange(channel, pitch, velocity uint8, on bool) {
	// ignore
}

// OnProgramChange implements midi.Observer. The scan for a matching patch is
// deferred to the render goroutine.
func (c *Concert) OnProgramChange(channel, program uint8) {
	c.scheduler.Schedule(func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if !c.listeningToProgramChange || channel != c.programChangeChannel {
			return
		}

		for position, patch := range c.patches {
			if !patch.HasBankAndProgram() {
				continue
			}
			if patch.GetBank() != c.currentBank || patch.GetProgram() != program {
				continue
			}

			// Found a patch which matches the received program number and active bank
			if c.activePatchPosition != InvalidPatchPosition {
				activePatch := c.patches[c.activePatchPosition]
				if c.logger != nil {
					c.logger.LogConcertf(debug.LogLevelInfo, "deactivating patch '%s'", activePatch.GetName())
				}
				activePatch.Deactivate()
			}
			if c.logger != nil {
				c.logger.LogConcertf(debug.LogLevelInfo, "activating patch '%s'", patch.GetName())
			}
			patch.Activate()
			c.activePatchPosition = PatchPosition(position)
			return
		}
	})
}

// OnControlChange implements midi.Observer. Only Bank Select MSB/LSB carry
// semantics; everything else returns before touching the scheduler.
func (c *Concert) OnControlChange(channel, controller, value uint8) {
	if controller != midi.ControllerBankSelectMSB && controller != midi.ControllerBankSelectLSB {
		return
	}

	c.scheduler.Schedule(func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if channel != c.programChangeChannel {
			return
		}

		// 7-bit MSB/LSB combine into a 14-bit bank number
		if controller == midi.ControllerBankSelectMSB {
			c.currentBank = uint16(value)<<7 | (c.currentBank & 0x7F)
		} else {
			c.currentBank = (c.currentBank & 0x3F80) | uint16(value)
		}
	})
}

// OnChannelPressureChange implements midi.Observer.
func (c *Concert) OnChannelPressureChange(channel, value uint8) {
	// ignore
}

// OnPitchBendChange implements midi.Observer.
func (c *Concert) OnPitchBendChange(channel uint8, value uint16) {
	// ignore
}

// JSON keys
const (
	isListeningToProgramChangeJSONKey = "isListeningToProgramChange"
	programChangeChannelJSONKey       = "programChangeChannel"
	currentBankJSONKey                = "currentBank"
	noteToLightMapJSONKey             = "noteToLightMap"
	patchesJSONKey                    = "patches"
)

// ToJSON returns the concert's persistent state.
func (c *Concert) ToJSON() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	convertedPatches := make([]interface{}, 0, len(c.patches))
	for _, patch := range c.patches {
		convertedPatches = append(convertedPatches, patch.ToJSON())
	}

	return map[string]interface{}{
		ObjectTypeKey:                     TypeNameConcert,
		isListeningToProgramChangeJSONKey: c.listeningToProgramChange,
		programChangeChannelJSONKey:       c.programChangeChannel,
		currentBankJSONKey:                c.currentBank,
		noteToLightMapJSONKey:             noteToLightMapToJSON(c.noteToLightMap),
		patchesJSONKey:                    convertedPatches,
	}
}

// FromJSON replaces the concert's persistent state. Existing patches are
// closed and replaced; no patch is active afterwards.
func (c *Concert) FromJSON(converted map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	helper := jsonhelper.New("Concert", converted, c.logger)
	helper.GetBool(isListeningToProgramChangeJSONKey, &c.listeningToProgramChange)
	helper.GetUint8(programChangeChannelJSONKey, &c.programChangeChannel)
	helper.GetUint16(currentBankJSONKey, &c.currentBank)

	var convertedNoteToLightMap map[string]interface{}
	if helper.GetObject(noteToLightMapJSONKey, &convertedNoteToLightMap) {
		c.noteToLightMap = noteToLightMapFromJSON(convertedNoteToLightMap)
		// Make sure all mapped lights fit into the strip
		c.createMinimumAmountOfLights()
	}

	c.closePatches()
	c.activePatchPosition = InvalidPatchPosition

	var convertedPatches []interface{}
	if helper.GetArray(patchesJSONKey, &convertedPatches) {
		for _, convertedPatch := range convertedPatches {
			object, ok := convertedPatch.(map[string]interface{})
			if !ok {
				continue
			}
			c.patches = append(c.patches, c.factory.CreatePatchFromJSON(object))
		}
	}
}

func (c *Concert) closePatches() {
	for _, patch := range c.patches {
		patch.Close()
	}
	c.patches = nil
}
