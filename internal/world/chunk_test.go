package world

import (
	"testing"

	"voxelstream/internal/vec"
	"voxelstream/internal/world/block"
)

func readyChunk(width, height int) *Chunk {
	c := NewChunk(vec.ChunkCoord{}, width, height)
	c.Install(make([]block.ID, width*width*height))
	return c
}

func TestChunkOutOfBoundsReads(t *testing.T) {
	c := readyChunk(16, 32)
	probes := [][3]int{
		{-1, 0, 0}, {16, 0, 0}, {0, -1, 0}, {0, 32, 0}, {0, 0, -1}, {0, 0, 16},
	}
	for _, p := range probes {
		if b := c.GetBlock(p[0], p[1], p[2]); b != block.Air {
			t.Errorf("out of bounds %v: got %v, want air", p, b)
		}
		if lv := c.WaterLevel(p[0], p[1], p[2]); lv != NoWater {
			t.Errorf("out of bounds %v: got level %d, want none", p, lv)
		}
	}
}

func TestChunkNotReadyReadsAir(t *testing.T) {
	c := NewChunk(vec.ChunkCoord{}, 16, 32)
	if b := c.GetBlock(5, 5, 5); b != block.Air {
		t.Errorf("unready chunk returned %v", b)
	}
	// Writes before generation must be dropped, not crash.
	c.SetBlock(5, 5, 5, block.Stone)
	c.SetWaterLevel(5, 5, 5, 3)
}

func TestChunkInstallSeedsWaterSources(t *testing.T) {
	width, height := 8, 16
	blocks := make([]block.ID, width*width*height)
	blocks[0] = block.Bedrock
	blocks[100] = block.Water
	c := NewChunk(vec.ChunkCoord{}, width, height)
	c.Install(blocks)

	if !c.Ready || !c.MeshDirty {
		t.Error("install did not mark chunk ready and dirty")
	}
	for i := range blocks {
		wet := c.Water[i] != NoWater
		if wet != (blocks[i] == block.Water) {
			t.Fatalf("index %d: level %d for block %v", i, c.Water[i], blocks[i])
		}
		if wet && c.Water[i] != LevelSource {
			t.Fatalf("index %d: generated water seeded as %d, want source", i, c.Water[i])
		}
	}
}

func TestChunkWaterBlockMirror(t *testing.T) {
	c := readyChunk(8, 16)

	c.SetWaterLevel(2, 3, 4, 5)
	if c.GetBlock(2, 3, 4) != block.Water {
		t.Error("wet cell did not become a water block")
	}
	c.SetWaterLevel(2, 3, 4, NoWater)
	if c.GetBlock(2, 3, 4) != block.Air {
		t.Error("dried cell did not revert to air")
	}

	// Placing a solid over a wet cell clears its level.
	c.SetWaterLevel(1, 1, 1, LevelSource)
	c.SetBlock(1, 1, 1, block.Stone)
	if c.WaterLevel(1, 1, 1) != NoWater {
		t.Error("solid block left a water level behind")
	}
}

func TestChunkSnapshotIsPrivate(t *testing.T) {
	c := readyChunk(8, 16)
	c.SetBlock(0, 1, 0, block.Stone)

	snap := c.SnapshotBlocks()
	snap[0] = block.Log
	if c.GetBlock(0, 0, 0) == block.Log {
		t.Error("snapshot aliases live chunk storage")
	}
}
