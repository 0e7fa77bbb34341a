package processing

// ObjectTypeKey is the JSON key holding an object's type tag.
const ObjectTypeKey = "objectType"

// Type tags (wire strings, stable)
const (
	TypeNameEqualRangeRgbSource   = "EqualRangeRgbSource"
	TypeNameNoteRgbSource         = "NoteRgbSource"
	TypeNameProcessingChain       = "ProcessingChain"
	TypeNamePatch                 = "Patch"
	TypeNameConcert               = "Concert"
	TypeNameLinearRgbFunction     = "LinearRgbFunction"
	TypeNamePianoDecayRgbFunction = "PianoDecayRgbFunction"
)

// ProcessingBlock is the uniform contract implemented by every renderer.
//
// Execute composites additively: blocks read the current strip contents, add
// their own contribution and write back. A block must never write outside the
// strip's current length, and leaves lights it doesn't drive unchanged.
type ProcessingBlock interface {
	// Activate puts the block into the active state. Idempotent.
	Activate()

	// Deactivate puts the block into the idle state, clearing any transient
	// state that would keep lights on. Idempotent.
	Deactivate()

	// Execute renders one frame contribution into the strip.
	Execute(strip Strip, noteToLightMap NoteToLightMap)

	// ToJSON returns the block's persistent parameters, keyed by ObjectTypeKey.
	ToJSON() map[string]interface{}

	// FromJSON restores the block's persistent parameters.
	FromJSON(converted map[string]interface{})

	// Close releases subscriptions held by the block. The block must not be
	// used afterwards.
	Close()
}
