package world

import (
	"voxelstream/internal/gen"
	"voxelstream/internal/mesh"
	"voxelstream/internal/vec"
	"voxelstream/internal/world/block"
)

// Level is a water cell's state. NoWater marks a dry cell, LevelSource a
// spring, and 1..MaxLevel flowing water of decreasing volume.
type Level uint8

const (
	LevelSource Level = 0
	MaxLevel    Level = 7
	NoWater     Level = 0xFF
)

// Chunk is a full-height world column. Blocks and water are flat buffers
// indexed x + z*W + y*W*W. A chunk exists in the registry from the moment it
// is requested; Ready flips once generated voxels arrive.
type Chunk struct {
	Coord  vec.ChunkCoord
	Width  int
	Height int

	Ready  bool
	Blocks []block.ID
	Water  []Level

	Mesh      mesh.Data
	HasMesh   bool
	MeshDirty bool

	// Guards against double-submitting mesh jobs for the same rebuild.
	meshPending bool
}

func NewChunk(coord vec.ChunkCoord, width, height int) *Chunk {
	return &Chunk{Coord: coord, Width: width, Height: height}
}

// Install adopts a generated voxel buffer and seeds water levels: every
// generated water block becomes a source, everything else stays dry.
func (c *Chunk) Install(blocks []block.ID) {
	c.Blocks = blocks
	c.Water = make([]Level, len(blocks))
	for i := range c.Water {
		if blocks[i] == block.Water {
			c.Water[i] = LevelSource
		} else {
			c.Water[i] = NoWater
		}
	}
	c.Ready = true
	c.MeshDirty = true
}

func (c *Chunk) inBounds(x, y, z int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height && z >= 0 && z < c.Width
}

// GetBlock returns the block at local coordinates, Air when out of bounds
// or before generation completes.
func (c *Chunk) GetBlock(x, y, z int) block.ID {
	if !c.Ready || !c.inBounds(x, y, z) {
		return block.Air
	}
	return c.Blocks[gen.Index(x, y, z, c.Width)]
}

func (c *Chunk) SetBlock(x, y, z int, b block.ID) {
	if !c.Ready || !c.inBounds(x, y, z) {
		return
	}
	i := gen.Index(x, y, z, c.Width)
	if c.Blocks[i] == b {
		return
	}
	c.Blocks[i] = b
	// Keep the water field consistent: only air and water cells may hold
	// a level.
	if b == block.Water {
		c.Water[i] = LevelSource
	} else if b != block.Air {
		c.Water[i] = NoWater
	}
	c.MeshDirty = true
}

// WaterLevel returns the water state at local coordinates, NoWater when out
// of bounds.
func (c *Chunk) WaterLevel(x, y, z int) Level {
	if !c.Ready || !c.inBounds(x, y, z) {
		return NoWater
	}
	return c.Water[gen.Index(x, y, z, c.Width)]
}

// SetWaterLevel writes a water state and mirrors it into the block buffer so
// the level/block invariant holds: a wet cell is a Water block, a dry cell
// that held water becomes Air.
func (c *Chunk) SetWaterLevel(x, y, z int, lv Level) {
	if !c.Ready || !c.inBounds(x, y, z) {
		return
	}
	i := gen.Index(x, y, z, c.Width)
	if c.Water[i] == lv {
		return
	}
	c.Water[i] = lv
	if lv == NoWater {
		if c.Blocks[i] == block.Water {
			c.Blocks[i] = block.Air
		}
	} else {
		c.Blocks[i] = block.Water
	}
	c.MeshDirty = true
}

// SnapshotBlocks copies the voxel buffer for handing to a mesh worker.
func (c *Chunk) SnapshotBlocks() []block.ID {
	out := make([]block.ID, len(c.Blocks))
	copy(out, c.Blocks)
	return out
}
