package gen

import "voxelstream/internal/world/block"

// Flat world mode: bedrock, dirt, a grass cap at FlatSurface, air above.
// Mainly useful in tests and benchmarks where noise cost is unwanted.
func fillFlat(p *Params, blocks []block.ID) {
	surface := p.FlatSurface
	if surface >= p.Height {
		surface = p.Height - 1
	}
	for lx := 0; lx < p.Width; lx++ {
		for lz := 0; lz < p.Width; lz++ {
			for y := 0; y <= surface; y++ {
				var b block.ID
				switch {
				case y == 0:
					b = block.Bedrock
				case y == surface:
					b = block.Grass
				default:
					b = block.Dirt
				}
				blocks[Index(lx, y, lz, p.Width)] = b
			}
		}
	}
}
