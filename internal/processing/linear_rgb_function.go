package processing

import (
	"midiglow/internal/jsonhelper"
)

// LinearConstants are the factor and offset applied to one color component.
type LinearConstants struct {
	Factor float32
	Offset float32
}

// LinearRgbFunction calculates each component as factor·velocity + offset
// while the note is sounding, black otherwise. Time-invariant.
type LinearRgbFunction struct {
	redConstants   LinearConstants
	greenConstants LinearConstants
	blueConstants  LinearConstants
}

// NewLinearRgbFunction creates a linear function with the given constants.
func NewLinearRgbFunction(red, green, blue LinearConstants) *LinearRgbFunction {
	return &LinearRgbFunction{
		redConstants:   red,
		greenConstants: green,
		blueConstants:  blue,
	}
}

// NewFullWhiteLinearRgbFunction creates the default unit ramp: factor 255 and
// offset 0 on every component, so any non-zero velocity gives full white.
func NewFullWhiteLinearRgbFunction() *LinearRgbFunction {
	full := LinearConstants{Factor: 255, Offset: 0}
	return NewLinearRgbFunction(full, full, full)
}

// Calculate implements RgbFunction.
func (f *LinearRgbFunction) Calculate(noteState NoteState, currentTime uint32) Rgb {
	if !noteState.Sounding {
		return Rgb{}
	}

	velocity := float32(noteState.PressDownVelocity)
	return RgbFromFloat(
		f.redConstants.Factor*velocity+f.redConstants.Offset,
		f.greenConstants.Factor*velocity+f.greenConstants.Offset,
		f.blueConstants.Factor*velocity+f.blueConstants.Offset,
	)
}

// JSON keys
const (
	rFactorJSONKey = "rFactor"
	rOffsetJSONKey = "rOffset"
	gFactorJSONKey = "gFactor"
	gOffsetJSONKey = "gOffset"
	bFactorJSONKey = "bFactor"
	bOffsetJSONKey = "bOffset"
)

// ToJSON implements RgbFunction.
func (f *LinearRgbFunction) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		ObjectTypeKey:  TypeNameLinearRgbFunction,
		rFactorJSONKey: f.redConstants.Factor,
		rOffsetJSONKey: f.redConstants.Offset,
		gFactorJSONKey: f.greenConstants.Factor,
		gOffsetJSONKey: f.greenConstants.Offset,
		bFactorJSONKey: f.blueConstants.Factor,
		bOffsetJSONKey: f.blueConstants.Offset,
	}
}

// FromJSON implements RgbFunction.
func (f *LinearRgbFunction) FromJSON(converted map[string]interface{}) {
	helper := jsonhelper.New("LinearRgbFunction", converted, nil)
	helper.GetFloat32(rFactorJSONKey, &f.redConstants.Factor)
	helper.GetFloat32(rOffsetJSONKey, &f.redConstants.Offset)
	helper.GetFloat32(gFactorJSONKey, &f.greenConstants.Factor)
	helper.GetFloat32(gOffsetJSONKey, &f.greenConstants.Offset)
	helper.GetFloat32(bFactorJSONKey, &f.blueConstants.Factor)
	helper.GetFloat32(bOffsetJSONKey, &f.blueConstants.Offset)
}
