package world

import (
	"voxelstream/internal/vec"
)

// ChunkRegistry holds all loaded chunks. It is owned by the manager's
// controlling goroutine and is deliberately unsynchronized; workers only
// ever see snapshots.
type ChunkRegistry struct {
	chunks map[vec.ChunkCoord]*Chunk
}

func NewChunkRegistry() *ChunkRegistry {
	return &ChunkRegistry{chunks: make(map[vec.ChunkCoord]*Chunk)}
}

func (r *ChunkRegistry) Get(coord vec.ChunkCoord) (*Chunk, bool) {
	c, ok := r.chunks[coord]
	return c, ok
}

func (r *ChunkRegistry) Has(coord vec.ChunkCoord) bool {
	_, ok := r.chunks[coord]
	return ok
}

func (r *ChunkRegistry) Add(c *Chunk) {
	r.chunks[c.Coord] = c
}

func (r *ChunkRegistry) Remove(coord vec.ChunkCoord) {
	delete(r.chunks, coord)
}

func (r *ChunkRegistry) Len() int { return len(r.chunks) }

// Each visits every chunk. The callback must not add or remove chunks.
func (r *ChunkRegistry) Each(fn func(*Chunk)) {
	for _, c := range r.chunks {
		fn(c)
	}
}

// EvictOutside removes chunks beyond radius (Chebyshev) from center and
// returns them so the caller can archive or discard.
func (r *ChunkRegistry) EvictOutside(center vec.ChunkCoord, radius int) []*Chunk {
	var out []*Chunk
	for coord, c := range r.chunks {
		if coord.ChebyshevTo(center) > radius {
			out = append(out, c)
			delete(r.chunks, coord)
		}
	}
	return out
}
