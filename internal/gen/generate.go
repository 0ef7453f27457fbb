package gen

import (
	"voxelstream/internal/world/block"
)

// Generate produces the flat voxel buffer for one chunk. It is a pure
// function of the request: no shared state, no side effects, and identical
// requests always produce byte-identical buffers. Malformed parameters
// degrade to "no contribution" rather than failing; workers have no error
// channel.
func Generate(req Request) Result {
	p := req.Params
	blocks := make([]block.ID, p.Width*p.Width*p.Height)

	if p.FlatSurface > 0 {
		fillFlat(p, blocks)
		return Result{ID: req.ID, Coord: req.Coord, Blocks: blocks}
	}

	s := NewSampler(p)
	cv := newCarver(p, s.ns)

	mask := make([]bool, len(blocks))
	carveWorms(p, s.ns, req.Coord, mask)

	baseX := req.Coord.X * p.Width
	baseZ := req.Coord.Z * p.Width

	for lx := 0; lx < p.Width; lx++ {
		for lz := 0; lz < p.Width; lz++ {
			wx := baseX + lx
			wz := baseZ + lz
			fillColumn(p, s, cv, mask, blocks, lx, lz, wx, wz)
		}
	}

	return Result{ID: req.ID, Coord: req.Coord, Blocks: blocks}
}

// fillColumn writes one (x,z) column: bedrock, carved interior, subsurface
// layers, surface block, sea water, air.
func fillColumn(p *Params, s *Sampler, cv *carver, mask []bool, blocks []block.ID, lx, lz, wx, wz int) {
	surface := s.SurfaceHeight(wx, wz)

	s.bf.weightsAt(float64(wx), float64(wz), s.weights)
	dom := 0
	for i, w := range s.weights {
		if w > s.weights[dom] {
			dom = i
		}
	}
	var biome *BiomeParams
	if len(p.Biomes) > 0 {
		biome = &p.Biomes[dom]
	}

	surf := surfaceBlockFor(biome, surface, p.SeaLevel)

	// Two independent draws gate whether a cave coinciding with the surface
	// may punch through it. Openings under the sea would just flood, so the
	// gate only applies on dry land.
	open := surface >= p.SeaLevel &&
		(hash01(int64(wx), int64(wz), p.Seed+41) < p.Caves.SurfaceOpenProb1 ||
			hash01(int64(wx), int64(wz), p.Seed+42) < p.Caves.SurfaceOpenProb2)

	carvedAt := func(y int) bool {
		return mask[Index(lx, y, lz, p.Width)] || cv.isCave(wx, y, wz) || cv.isRavine(wx, y, wz, surface)
	}

	mouth := open && (carvedAt(surface) || (surface > 1 && carvedAt(surface-1)))

	for y := p.Height - 1; y >= 0; y-- {
		idx := Index(lx, y, lz, p.Width)

		switch {
		case y == 0:
			blocks[idx] = block.Bedrock

		case y > surface:
			if y <= p.SeaLevel {
				blocks[idx] = block.Water
			} else {
				blocks[idx] = block.Air
			}

		case y == surface:
			if mouth {
				// 2-block-tall cave mouth: this cell and the one below
				// stay open; the cell above is already air on dry land.
				blocks[idx] = block.Air
			} else {
				blocks[idx] = surf
			}

		default: // y < surface
			if mouth && y == surface-1 {
				blocks[idx] = block.Air
				continue
			}
			if carvedAt(y) {
				blocks[idx] = block.Air
				continue
			}
			blocks[idx] = layerBlockFor(biome, surface-y)
		}
	}
}

// surfaceBlockFor applies the biome surface rule.
func surfaceBlockFor(b *BiomeParams, surface, seaLevel int) block.ID {
	if b == nil {
		return block.Grass
	}
	switch b.Surface {
	case SurfaceOcean:
		return block.Sand
	case SurfaceMountain:
		if surface >= b.SnowLine {
			return block.Snow
		}
		return block.Stone
	default:
		if surface >= seaLevel-b.BeachBand && surface <= seaLevel+b.BeachBand {
			return block.Sand
		}
		if b.SurfaceBlock != block.Air {
			return b.SurfaceBlock
		}
		return block.Grass
	}
}

// layerBlockFor walks the biome's subsurface stack top-down; past the stack
// everything is stone. depth is blocks below the surface cell (>= 1).
func layerBlockFor(b *BiomeParams, depth int) block.ID {
	if b != nil {
		acc := 0
		for _, l := range b.Layers {
			acc += l.Thickness
			if depth <= acc {
				return l.Block
			}
		}
	}
	return block.Stone
}
