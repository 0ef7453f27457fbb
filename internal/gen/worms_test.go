package gen

import (
	"testing"

	"voxelstream/internal/vec"
)

// carveWormsRef replays the spawn loop of carveWorms with a search window
// widened by margin blocks. The production window must already cover every
// spawn cell whose worm can touch the chunk, so widening it further must
// never change the mask.
func carveWormsRef(p *Params, ns *noiseSet, coord vec.ChunkCoord, mask []bool, margin int) {
	cp := &p.Caves
	baseX := coord.X * p.Width
	baseZ := coord.Z * p.Width
	reach := wormReach(cp) + margin

	c0x := vec.FloorDiv(baseX-reach, cp.WormCellSize)
	c1x := vec.FloorDiv(baseX+p.Width+reach, cp.WormCellSize)
	c0z := vec.FloorDiv(baseZ-reach, cp.WormCellSize)
	c1z := vec.FloorDiv(baseZ+p.Width+reach, cp.WormCellSize)

	for cx := c0x; cx <= c1x; cx++ {
		for cz := c0z; cz <= c1z; cz++ {
			rng := newChunkRNG(p.Seed, cx, cz, 907)
			count := rng.nextN(cp.WormMaxPerCell + 1)
			for i := 0; i < count; i++ {
				traceWorm(p, ns, rng, cx, cz, mask, baseX, baseZ)
			}
		}
	}
}

func TestWormReachCoversMaxWander(t *testing.T) {
	cp := &testParams(1).Caves
	worst := maxWormStep*float64(cp.WormMaxLength) + cp.WormRadius
	if got := wormReach(cp); float64(got) < worst {
		t.Errorf("wormReach = %d, cannot cover worst-case wander %.1f", got, worst)
	}
}

// A worm is carved identically from every chunk it crosses. If the search
// window were too small, a long worm would appear in one chunk's mask and
// be absent from a neighbor's, leaving a tunnel that dead-ends on the seam.
func TestWormWindowSeamStable(t *testing.T) {
	coords := []vec.ChunkCoord{{}, {X: 3, Z: -2}, {X: -7, Z: 11}}
	for _, seed := range []int64{1, 99} {
		p := testParams(seed)
		ns := newNoiseSet(seed)
		for _, coord := range coords {
			n := p.Width * p.Width * p.Height

			got := make([]bool, n)
			carveWorms(p, ns, coord, got)

			want := make([]bool, n)
			carveWormsRef(p, ns, coord, want, 2*wormReach(&p.Caves))

			for i := range want {
				if got[i] != want[i] {
					x := i % p.Width
					rest := i / p.Width
					t.Fatalf("seed %d chunk %v: mask differs at %d,%d,%d",
						seed, coord, x, rest/p.Width, rest%p.Width)
				}
			}
		}
	}
}
