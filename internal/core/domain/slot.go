package domain

// BlockTypeKey is the reserved key holding a block's type tag.
const BlockTypeKey = "@type"

// Block is a single structured content unit within a slot.
type Block map[string]any

// Type returns the block's type tag, or "" when absent.
func (b Block) Type() string {
	t, _ := b[BlockTypeKey].(string)
	return t
}

// Slot is a named, ordered container of blocks plus its layout.
type Slot struct {
	Name         string
	Blocks       map[string]Block
	BlocksLayout map[string]any
}

// SlotByName returns the content's slot called name.
func (c *Content) SlotByName(name string) (*Slot, bool) {
	for i := range c.Slots {
		if c.Slots[i].Name == name {
			return &c.Slots[i], true
		}
	}
	return nil, false
}
