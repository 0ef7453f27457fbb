package world

import (
	"testing"

	"github.com/stretchr/testify/require"

	"voxelstream/internal/vec"
	"voxelstream/internal/world/block"
)

func TestColdCacheRoundTrip(t *testing.T) {
	cc := NewColdCache(8)
	coord := vec.ChunkCoord{X: 3, Z: -9}

	blocks := make([]block.ID, 16*16*32)
	for i := range blocks {
		blocks[i] = block.ID(i % int(block.Count))
	}
	cc.Put(coord, blocks)

	got, ok := cc.Take(coord)
	require.True(t, ok)
	require.Equal(t, blocks, got)

	// Take removes the entry.
	_, ok = cc.Take(coord)
	require.False(t, ok)
}

func TestColdCacheEvictsOldest(t *testing.T) {
	cc := NewColdCache(2)
	blocks := make([]block.ID, 64)

	cc.Put(vec.ChunkCoord{X: 1}, blocks)
	cc.Put(vec.ChunkCoord{X: 2}, blocks)
	cc.Put(vec.ChunkCoord{X: 3}, blocks)

	require.Equal(t, 2, cc.Len())
	_, ok := cc.Take(vec.ChunkCoord{X: 1})
	require.False(t, ok, "oldest entry should have been dropped")
	_, ok = cc.Take(vec.ChunkCoord{X: 3})
	require.True(t, ok)
}

func TestColdCacheDisabled(t *testing.T) {
	cc := NewColdCache(0)
	cc.Put(vec.ChunkCoord{}, make([]block.ID, 8))
	require.Equal(t, 0, cc.Len())
}
