package processing

import (
	"midiglow/internal/debug"
	"midiglow/internal/jsonhelper"
)

// RgbFunction maps a note state and the current time to a color.
type RgbFunction interface {
	// Calculate returns the output color for the given note state at
	// currentTime (engine milliseconds).
	Calculate(noteState NoteState, currentTime uint32) Rgb

	// ToJSON returns the function's parameters, keyed by ObjectTypeKey.
	ToJSON() map[string]interface{}

	// FromJSON restores the function's parameters.
	FromJSON(converted map[string]interface{})
}

// RgbFunctionFactory constructs RGB functions from their JSON form.
type RgbFunctionFactory struct {
	logger *debug.Logger
}

// NewRgbFunctionFactory creates a factory.
func NewRgbFunctionFactory(logger *debug.Logger) *RgbFunctionFactory {
	return &RgbFunctionFactory{logger: logger}
}

// CreateRgbFunction constructs the function named by the objectType tag and
// populates it from the given JSON object. Unknown tags return nil.
func (f *RgbFunctionFactory) CreateRgbFunction(converted map[string]interface{}) RgbFunction {
	helper := jsonhelper.New("RgbFunctionFactory", converted, f.logger)

	var objectType string
	if !helper.GetString(ObjectTypeKey, &objectType) {
		return nil
	}

	var rgbFunction RgbFunction
	switch objectType {
	case TypeNameLinearRgbFunction:
		rgbFunction = NewLinearRgbFunction(LinearConstants{}, LinearConstants{}, LinearConstants{})
	case TypeNamePianoDecayRgbFunction:
		rgbFunction = NewPianoDecayRgbFunction(Rgb{})
	default:
		if f.logger != nil {
			f.logger.LogProcessingf(debug.LogLevelError, "Unknown RGB function type '%s'", objectType)
		}
		return nil
	}

	rgbFunction.FromJSON(converted)
	return rgbFunction
}
