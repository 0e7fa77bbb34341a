package processing

import (
	"sync"

	"midiglow/internal/debug"
	"midiglow/internal/jsonhelper"
)

// ProcessingChain is an ordered list of processing blocks which is itself a
// processing block. The chain owns its members: inserting hands the block
// over, and the chain closes members it discards.
type ProcessingChain struct {
	mu sync.Mutex

	factory *ProcessingBlockFactory
	active  bool
	blocks  []ProcessingBlock
}

// NewProcessingChain creates an empty, inactive chain. The factory is needed
// to construct members when restoring from JSON.
func NewProcessingChain(factory *ProcessingBlockFactory) *ProcessingChain {
	return &ProcessingChain{factory: factory}
}

// InsertBlock appends a block to the chain. The block's activation state is
// matched to the chain's.
func (c *ProcessingChain) InsertBlock(block ProcessingBlock) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blocks = append(c.blocks, block)
	c.matchBlockState(block)
}

// InsertBlockAt inserts a block at the given index, clamped to the current
// length. The block's activation state is matched to the chain's.
func (c *ProcessingChain) InsertBlockAt(block ProcessingBlock, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 {
		index = 0
	}
	if index > len(c.blocks) {
		index = len(c.blocks)
	}

	c.blocks = append(c.blocks, nil)
	copy(c.blocks[index+1:], c.blocks[index:])
	c.blocks[index] = block
	c.matchBlockState(block)
}

// BlockCount returns the number of blocks in the chain.
func (c *ProcessingChain) BlockCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.blocks)
}

func (c *ProcessingChain) matchBlockState(block ProcessingBlock) {
	if c.active {
		block.Activate()
	} else {
		block.Deactivate()
	}
}

// Activate implements ProcessingBlock, propagating to every member.
func (c *ProcessingChain) Activate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, block := range c.blocks {
		block.Activate()
	}
	c.active = true
}

// Deactivate implements ProcessingBlock, propagating to every member.
func (c *ProcessingChain) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, block := range c.blocks {
		block.Deactivate()
	}
	c.active = false
}

// Execute implements ProcessingBlock: the strip is cleared to black, then
// every member adds its contribution in insertion order.
func (c *ProcessingChain) Execute(strip Strip, noteToLightMap NoteToLightMap) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Start clean
	for i := range strip {
		strip[i] = Rgb{}
	}

	for _, block := range c.blocks {
		block.Execute(strip, noteToLightMap)
	}
}

// processingChainJSONKey holds the member list in the JSON form.
const processingChainJSONKey = "processingChain"

// ToJSON implements ProcessingBlock.
func (c *ProcessingChain) ToJSON() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	convertedChain := make([]interface{}, 0, len(c.blocks))
	for _, block := range c.blocks {
		convertedChain = append(convertedChain, block.ToJSON())
	}

	return map[string]interface{}{
		ObjectTypeKey:          TypeNameProcessingChain,
		processingChainJSONKey: convertedChain,
	}
}

// FromJSON implements ProcessingBlock. Existing members are closed and
// replaced; entries the factory doesn't recognise are skipped.
func (c *ProcessingChain) FromJSON(converted map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeBlocks()

	helper := jsonhelper.New("ProcessingChain", converted, c.factory.logger)

	var convertedChain []interface{}
	if helper.GetArray(processingChainJSONKey, &convertedChain) {
		for _, convertedBlock := range convertedChain {
			object, ok := convertedBlock.(map[string]interface{})
			if !ok {
				continue
			}
			if block := c.factory.CreateProcessingBlock(object); block != nil {
				c.blocks = append(c.blocks, block)
			}
		}
	} else if c.factory.logger != nil {
		c.factory.logger.LogProcessingf(debug.LogLevelError,
			"FromJSON: JSON does not contain list of processing blocks. Chain will stay empty.")
	}

	for _, block := range c.blocks {
		c.matchBlockState(block)
	}
}

func (c *ProcessingChain) closeBlocks() {
	for _, block := range c.blocks {
		block.Close()
	}
	c.blocks = nil
}

// Close implements ProcessingBlock, closing every member.
func (c *ProcessingChain) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeBlocks()
}
