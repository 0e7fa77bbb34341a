package jsonhelper

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, source string) map[string]interface{} {
	t.Helper()
	var object map[string]interface{}
	if err := json.Unmarshal([]byte(source), &object); err != nil {
		t.Fatalf("Failed to decode test JSON: %v", err)
	}
	return object
}

func TestGetItemsFromDecodedJson(t *testing.T) {
	object := decode(t, `{"flag": true, "name": "patch", "channel": 3, "factor": 1.5}`)
	helper := New("test", object, nil)

	var flag bool
	if !helper.GetBool("flag", &flag) || !flag {
		t.Error("Expected flag to be fetched as true")
	}

	var name string
	if !helper.GetString("name", &name) || name != "patch" {
		t.Errorf("Expected name 'patch', got %q", name)
	}

	var channel uint8
	if !helper.GetUint8("channel", &channel) || channel != 3 {
		t.Errorf("Expected channel 3, got %d", channel)
	}

	var factor float32
	if !helper.GetFloat32("factor", &factor) || factor != 1.5 {
		t.Errorf("Expected factor 1.5, got %v", factor)
	}
}

func TestGetItemsFromNativeValues(t *testing.T) {
	// Objects built in-process carry native types instead of float64
	object := map[string]interface{}{
		"channel": uint8(7),
		"bank":    uint16(300),
		"factor":  float32(0.25),
	}
	helper := New("test", object, nil)

	var channel uint8
	if !helper.GetUint8("channel", &channel) || channel != 7 {
		t.Errorf("Expected channel 7, got %d", channel)
	}

	var bank uint16
	if !helper.GetUint16("bank", &bank) || bank != 300 {
		t.Errorf("Expected bank 300, got %d", bank)
	}

	var factor float32
	if !helper.GetFloat32("factor", &factor) || factor != 0.25 {
		t.Errorf("Expected factor 0.25, got %v", factor)
	}
}

func TestMissingKeyLeavesTargetUntouched(t *testing.T) {
	helper := New("test", map[string]interface{}{}, nil)

	value := uint8(42)
	if helper.GetUint8("absent", &value) {
		t.Error("Expected GetUint8 to report absence")
	}
	if value != 42 {
		t.Errorf("Expected target untouched, got %d", value)
	}
}

func TestTypeMismatchLeavesTargetUntouched(t *testing.T) {
	object := decode(t, `{"channel": "not a number", "flag": 1}`)
	helper := New("test", object, nil)

	channel := uint8(9)
	if helper.GetUint8("channel", &channel) {
		t.Error("Expected GetUint8 to fail on a string value")
	}
	if channel != 9 {
		t.Errorf("Expected target untouched, got %d", channel)
	}

	flag := true
	if helper.GetBool("flag", &flag) {
		t.Error("Expected GetBool to fail on a number value")
	}
	if !flag {
		t.Error("Expected target untouched")
	}
}

func TestGetObjectAndArray(t *testing.T) {
	object := decode(t, `{"nested": {"a": 1}, "list": [1, 2, 3]}`)
	helper := New("test", object, nil)

	var nested map[string]interface{}
	if !helper.GetObject("nested", &nested) {
		t.Fatal("Expected nested object to be fetched")
	}
	if _, present := nested["a"]; !present {
		t.Error("Expected nested object to contain key 'a'")
	}

	var list []interface{}
	if !helper.GetArray("list", &list) || len(list) != 3 {
		t.Errorf("Expected list of 3 entries, got %v", list)
	}
}
