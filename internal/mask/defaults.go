package mask

// DefaultMasks is the built-in batch, processed in this order. Each mask
// selects a group of tiles on the packed 4x4 board.
var DefaultMasks = []string{
	"f0f00f0ff0f00f0f",
	"0000f0f00000f0f0",
	"0f0f00000f0f0000",
	"ff00ff0000ff00ff",
	"00000000ff00ff00",
	"00ff00ff00000000",
}
