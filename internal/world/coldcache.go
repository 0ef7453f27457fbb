package world

import (
	"github.com/klauspost/compress/zstd"

	"voxelstream/internal/metrics"
	"voxelstream/internal/vec"
	"voxelstream/internal/world/block"
)

// ColdCache keeps compressed voxel buffers of evicted chunks in memory so a
// chunk re-entering the streaming radius skips regeneration. Bounded by
// entry count, evicting oldest first. Owned by the controlling goroutine.
type ColdCache struct {
	enc     *zstd.Encoder
	dec     *zstd.Decoder
	entries map[vec.ChunkCoord][]byte
	order   []vec.ChunkCoord
	max     int
}

func NewColdCache(maxEntries int) *ColdCache {
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	dec, _ := zstd.NewReader(nil)
	return &ColdCache{
		enc:     enc,
		dec:     dec,
		entries: make(map[vec.ChunkCoord][]byte),
		max:     maxEntries,
	}
}

// Put archives a chunk's voxel buffer.
func (cc *ColdCache) Put(coord vec.ChunkCoord, blocks []block.ID) {
	if cc.max <= 0 {
		return
	}
	raw := make([]byte, len(blocks))
	for i, b := range blocks {
		raw[i] = byte(b)
	}
	if _, ok := cc.entries[coord]; !ok {
		cc.order = append(cc.order, coord)
	}
	cc.entries[coord] = cc.enc.EncodeAll(raw, nil)

	for len(cc.entries) > cc.max {
		oldest := cc.order[0]
		cc.order = cc.order[1:]
		delete(cc.entries, oldest)
	}
}

// Take returns and removes the archived buffer for coord, if present.
func (cc *ColdCache) Take(coord vec.ChunkCoord) ([]block.ID, bool) {
	comp, ok := cc.entries[coord]
	if !ok {
		return nil, false
	}
	delete(cc.entries, coord)
	for i, c := range cc.order {
		if c == coord {
			cc.order = append(cc.order[:i], cc.order[i+1:]...)
			break
		}
	}
	raw, err := cc.dec.DecodeAll(comp, nil)
	if err != nil {
		return nil, false
	}
	blocks := make([]block.ID, len(raw))
	for i, b := range raw {
		blocks[i] = block.ID(b)
	}
	metrics.ColdCacheHits.Inc()
	return blocks, true
}

func (cc *ColdCache) Len() int { return len(cc.entries) }
