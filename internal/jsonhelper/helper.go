// Package jsonhelper provides typed, logging accessors over decoded JSON
// objects. Values decoded by encoding/json arrive as float64/bool/string;
// values produced in-process may carry their native Go types. Both are
// accepted. On a type mismatch the target is left untouched.
package jsonhelper

import (
	"midiglow/internal/debug"
)

// Helper fetches items from a JSON object with type checking.
type Helper struct {
	user           string
	object         map[string]interface{}
	logger         *debug.Logger
	logMissingKeys bool
}

// New creates a helper for the given object. user names the caller in log
// entries. Missing keys are logged unless disabled with SetLogMissingKeys.
func New(user string, object map[string]interface{}, logger *debug.Logger) *Helper {
	return &Helper{
		user:           user,
		object:         object,
		logger:         logger,
		logMissingKeys: true,
	}
}

// SetLogMissingKeys controls whether absent keys produce a log entry.
func (h *Helper) SetLogMissingKeys(enabled bool) {
	h.logMissingKeys = enabled
}

func (h *Helper) item(key string) (interface{}, bool) {
	value, present := h.object[key]
	if !present || value == nil {
		if h.logMissingKeys && h.logger != nil {
			h.logger.LogProcessingf(debug.LogLevelError, "%s: Missing JSON key '%s'", h.user, key)
		}
		return nil, false
	}
	return value, true
}

func (h *Helper) typeError(key string, expected string) {
	if h.logger != nil {
		h.logger.LogProcessingf(debug.LogLevelError, "%s: JSON value with key '%s' not a %s", h.user, key, expected)
	}
}

func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	default:
		return 0, false
	}
}

// GetBool fetches a boolean value if present. Returns whether target was set.
func (h *Helper) GetBool(key string, target *bool) bool {
	value, present := h.item(key)
	if !present {
		return false
	}
	b, ok := value.(bool)
	if !ok {
		h.typeError(key, "boolean")
		return false
	}
	*target = b
	return true
}

// GetString fetches a string value if present.
func (h *Helper) GetString(key string, target *string) bool {
	value, present := h.item(key)
	if !present {
		return false
	}
	s, ok := value.(string)
	if !ok {
		h.typeError(key, "string")
		return false
	}
	*target = s
	return true
}

// GetUint8 fetches an 8-bit unsigned value if present.
func (h *Helper) GetUint8(key string, target *uint8) bool {
	value, present := h.item(key)
	if !present {
		return false
	}
	f, ok := toFloat64(value)
	if !ok {
		h.typeError(key, "number")
		return false
	}
	*target = uint8(f)
	return true
}

// GetUint16 fetches a 16-bit unsigned value if present.
func (h *Helper) GetUint16(key string, target *uint16) bool {
	value, present := h.item(key)
	if !present {
		return false
	}
	f, ok := toFloat64(value)
	if !ok {
		h.typeError(key, "number")
		return false
	}
	*target = uint16(f)
	return true
}

// GetInt fetches an integer value if present.
func (h *Helper) GetInt(key string, target *int) bool {
	value, present := h.item(key)
	if !present {
		return false
	}
	f, ok := toFloat64(value)
	if !ok {
		h.typeError(key, "number")
		return false
	}
	*target = int(f)
	return true
}

// GetFloat32 fetches a float value if present.
func (h *Helper) GetFloat32(key string, target *float32) bool {
	value, present := h.item(key)
	if !present {
		return false
	}
	f, ok := toFloat64(value)
	if !ok {
		h.typeError(key, "number")
		return false
	}
	*target = float32(f)
	return true
}

// GetObject fetches a nested JSON object if present.
func (h *Helper) GetObject(key string, target *map[string]interface{}) bool {
	value, present := h.item(key)
	if !present {
		return false
	}
	object, ok := value.(map[string]interface{})
	if !ok {
		h.typeError(key, "object")
		return false
	}
	*target = object
	return true
}

// GetArray fetches a JSON array if present.
func (h *Helper) GetArray(key string, target *[]interface{}) bool {
	value, present := h.item(key)
	if !present {
		return false
	}
	array, ok := value.([]interface{})
	if !ok {
		h.typeError(key, "array")
		return false
	}
	*target = array
	return true
}
