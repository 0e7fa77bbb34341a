package processing

import (
	"midiglow/internal/common"
	"midiglow/internal/debug"
	"midiglow/internal/jsonhelper"
	"midiglow/internal/midi"
)

// ProcessingBlockFactory constructs processing blocks, chains and patches
// from their JSON form, dispatching on the objectType tag.
type ProcessingBlockFactory struct {
	input              midi.Input
	rgbFunctionFactory *RgbFunctionFactory
	time               common.Time
	logger             *debug.Logger
}

// NewProcessingBlockFactory creates a factory. The MIDI input and time source
// are handed to every note-driven block the factory constructs.
func NewProcessingBlockFactory(input midi.Input, rgbFunctionFactory *RgbFunctionFactory, time common.Time, logger *debug.Logger) *ProcessingBlockFactory {
	return &ProcessingBlockFactory{
		input:              input,
		rgbFunctionFactory: rgbFunctionFactory,
		time:               time,
		logger:             logger,
	}
}

// CreateProcessingBlock constructs the block named by the objectType tag and
// populates it from the given JSON object. Unknown tags return nil.
func (f *ProcessingBlockFactory) CreateProcessingBlock(converted map[string]interface{}) ProcessingBlock {
	helper := jsonhelper.New("ProcessingBlockFactory", converted, f.logger)

	var objectType string
	if !helper.GetString(ObjectTypeKey, &objectType) {
		return nil
	}

	var block ProcessingBlock
	switch objectType {
	case TypeNameEqualRangeRgbSource:
		block = NewEqualRangeRgbSource()
	case TypeNameNoteRgbSource:
		block = NewNoteRgbSource(f.input, f.rgbFunctionFactory, f.time)
	case TypeNameProcessingChain:
		// A processing chain needs the factory to construct its children
		block = NewProcessingChain(f)
	default:
		if f.logger != nil {
			f.logger.LogProcessingf(debug.LogLevelError, "Unknown processing block type '%s'", objectType)
		}
		return nil
	}

	block.FromJSON(converted)
	return block
}

// CreatePatch creates an empty patch.
func (f *ProcessingBlockFactory) CreatePatch() *Patch {
	// A patch needs the factory to construct its children
	return NewPatch(f)
}

// CreatePatchFromJSON creates a patch populated from the given JSON object.
func (f *ProcessingBlockFactory) CreatePatchFromJSON(converted map[string]interface{}) *Patch {
	patch := f.CreatePatch()
	patch.FromJSON(converted)
	return patch
}

// CreateProcessingChain creates an empty chain.
func (f *ProcessingBlockFactory) CreateProcessingChain() *ProcessingChain {
	return NewProcessingChain(f)
}
