package registry

import "mini-voxel/internal/world"

// DefaultBlocks is the block set the demo world is built from.
var DefaultBlocks = []BlockDefinition{
	{
		ID:          world.BlockTypeGrass,
		Name:        "grass",
		TextureTop:  "grass_top.png",
		TextureSide: "grass_side.png",
		TextureBot:  "dirt.png",
		IsOpaque:    true,
	},
	{ID: world.BlockTypeDirt, Name: "dirt", TextureTop: "dirt.png", IsOpaque: true},
	{ID: world.BlockTypeStone, Name: "stone", TextureTop: "stone.png", IsOpaque: true},
	{ID: world.BlockTypeCobblestone, Name: "cobblestone", TextureTop: "cobblestone.png", IsOpaque: true},
	{ID: world.BlockTypeBedrock, Name: "bedrock", TextureTop: "bedrock.png", IsOpaque: true},
	{ID: world.BlockTypeSand, Name: "sand", TextureTop: "sand.png", IsOpaque: true},
	{ID: world.BlockTypePlanks, Name: "planks", TextureTop: "planks_oak.png", IsOpaque: true},
	// Transparent blocks are meshed but never cull their neighbours.
	{ID: world.BlockTypeGlass, Name: "glass", TextureTop: "glass.png", IsTransparent: true},
	{ID: world.BlockTypeWater, Name: "water", TextureTop: "water_still.png", TextureSide: "water_flow.png", IsTransparent: true},
	{ID: world.BlockTypeLeaves, Name: "leaves", TextureTop: "leaves_oak.png", IsTransparent: true},
}

// Default returns a registry holding DefaultBlocks.
func Default() *Registry {
	r, err := FromDefinitions(DefaultBlocks)
	if err != nil {
		// DefaultBlocks has unique ids and names.
		panic(err)
	}
	return r
}
