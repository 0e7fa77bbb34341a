package processing

import (
	"testing"
)

func TestFactoryCreatesEachBlockType(t *testing.T) {
	factory, _, _ := newTestFactory()

	cases := []struct {
		objectType string
	}{
		{TypeNameEqualRangeRgbSource},
		{TypeNameNoteRgbSource},
		{TypeNameProcessingChain},
	}

	for _, tc := range cases {
		block := factory.CreateProcessingBlock(map[string]interface{}{ObjectTypeKey: tc.objectType})
		if block == nil {
			t.Errorf("Expected factory to create %q", tc.objectType)
			continue
		}
		block.Close()
	}
}

func TestFactoryUnknownTypeReturnsNil(t *testing.T) {
	factory, _, _ := newTestFactory()

	if block := factory.CreateProcessingBlock(map[string]interface{}{ObjectTypeKey: "NoSuchBlock"}); block != nil {
		t.Errorf("Expected nil for an unknown type, got %T", block)
	}
}

func TestFactoryMissingObjectTypeReturnsNil(t *testing.T) {
	factory, _, _ := newTestFactory()

	if block := factory.CreateProcessingBlock(map[string]interface{}{}); block != nil {
		t.Errorf("Expected nil without an objectType, got %T", block)
	}
}

func TestFactoryPopulatesCreatedBlocks(t *testing.T) {
	factory, _, _ := newTestFactory()

	block := factory.CreateProcessingBlock(map[string]interface{}{
		ObjectTypeKey: TypeNameEqualRangeRgbSource,
		"r":           float64(1),
		"g":           float64(2),
		"b":           float64(3),
	})

	src, ok := block.(*EqualRangeRgbSource)
	if !ok {
		t.Fatalf("Expected an EqualRangeRgbSource, got %T", block)
	}
	if src.GetColor() != (Rgb{1, 2, 3}) {
		t.Errorf("Expected the factory to populate parameters, got %+v", src.GetColor())
	}
}
