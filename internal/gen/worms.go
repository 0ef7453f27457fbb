package gen

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelstream/internal/vec"
)

// Perlin worms: tunnels traced as random walks steered by smooth 3D noise,
// rasterized into a carve mask before column fill. Spawn points live on a
// coarse 2D cell grid so a worm crossing a chunk border carves identically
// from either side; only the voxels inside the requested chunk are written.

type wormSegment struct {
	pos      mgl64.Vec3
	steps    int
	total    int
	branches int
}

// carveWorms rasterizes every worm that can reach the chunk into mask, a
// W*W*H bitfield indexed like the voxel buffer.
func carveWorms(p *Params, ns *noiseSet, coord vec.ChunkCoord, mask []bool) {
	cp := &p.Caves
	if cp.WormMaxPerCell <= 0 || cp.WormMaxLength <= 0 || cp.WormCellSize <= 0 {
		return
	}

	baseX := coord.X * p.Width
	baseZ := coord.Z * p.Width
	reach := wormReach(cp)

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

// maxWormStep is the longest single step traceWorm can take.
const maxWormStep = 2.5

// wormReach bounds how far any voxel carved by a worm can lie from its
// spawn point. Every step moves at most maxWormStep and branches never
// outlive the parent's budget, so displacement is capped by the step count.
// The spawn-cell search window must cover this distance or a worm carved by
// one chunk will be missing from its neighbor.
func wormReach(cp *CaveParams) int {
	return int(math.Ceil(maxWormStep*float64(cp.WormMaxLength)+cp.WormRadius)) + 1
}

// traceWorm walks one worm (and its branches) from a spawn point inside the
// given worm cell. Branching pushes onto an explicit stack with a shrinking
// budget, so tracing always terminates without deep recursion.
func traceWorm(p *Params, ns *noiseSet, rng *chunkRNG, cellX, cellZ int, mask []bool, baseX, baseZ int) {
	cp := &p.Caves

	sx := float64(cellX*cp.WormCellSize + rng.nextN(cp.WormCellSize))
	sz := float64(cellZ*cp.WormCellSize + rng.nextN(cp.WormCellSize))
	// Depth bias: squaring the draw pushes spawns toward the lower half.
	f := rng.nextFloat()
	sy := 6 + f*f*float64(p.Height)*0.5

	length := cp.WormMinLength
	if cp.WormMaxLength > cp.WormMinLength {
		length += rng.nextN(cp.WormMaxLength - cp.WormMinLength)
	}

	stack := []wormSegment{{
		pos:      mgl64.Vec3{sx, sy, sz},
		steps:    length,
		total:    length,
		branches: cp.WormMaxBranch,
	}}

	for len(stack) > 0 {
		seg := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		pos := seg.pos
		for step := 0; step < seg.steps; step++ {
			progress := float64(seg.total-seg.steps+step) / float64(seg.total)
			radius := cp.WormRadius * (1 - 0.7*progress)
			if radius < 0.8 {
				radius = 0.8
			}
			carveSphere(p, mask, pos, radius, baseX, baseZ)

			yaw := ns.worm.at3(pos.X()*0.02, pos.Y()*0.02, pos.Z()*0.02) * math.Pi * 2
			pitch := ns.worm.at3(pos.X()*0.02+941.3, pos.Y()*0.02, pos.Z()*0.02-577.1)*0.8 - 0.25

			stepLen := 1.0 + rng.nextFloat()*(maxWormStep-1.0)
			dir := mgl64.Vec3{
				math.Cos(pitch) * math.Cos(yaw),
				math.Sin(pitch),
				math.Cos(pitch) * math.Sin(yaw),
			}
			pos = pos.Add(dir.Mul(stepLen))

			if pos.Y() < 4 || pos.Y() > float64(p.Height-4) {
				break
			}

			if seg.branches > 0 && rng.nextFloat() < cp.WormBranchProb {
				stack = append(stack, wormSegment{
					pos:      pos,
					steps:    (seg.steps - step) / 2,
					total:    seg.total,
					branches: seg.branches - 1,
				})
			}
		}
	}
}

// carveSphere marks mask voxels within radius of center, clipped to the
// chunk volume.
func carveSphere(p *Params, mask []bool, center mgl64.Vec3, radius float64, baseX, baseZ int) {
	r := int(math.Ceil(radius))
	cx := int(math.Round(center.X()))
	cy := int(math.Round(center.Y()))
	cz := int(math.Round(center.Z()))
	r2 := radius * radius

	for dy := -r; dy <= r; dy++ {
		y := cy + dy
		if y < 1 || y >= p.Height {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			x := cx + dx - baseX
			if x < 0 || x >= p.Width {
				continue
			}
			for dz := -r; dz <= r; dz++ {
				z := cz + dz - baseZ
				if z < 0 || z >= p.Width {
					continue
				}
				fx := float64(cx+dx) - center.X()
				fy := float64(y) - center.Y()
				fz := float64(cz+dz) - center.Z()
				if fx*fx+fy*fy+fz*fz <= r2 {
					mask[Index(x, y, z, p.Width)] = true
				}
			}
		}
	}
}
