package gen

import "math"

// Biome partition: the world is split into irregular cells on a jittered
// grid. Every cell hosts one site voting for one biome; a column's biome
// weight vector is the normalized sum of Gaussian kernels over nearby sites.

type biomeField struct {
	part       PartitionParams
	biomes     []BiomeParams
	seed       int64
	totalSpawn float64
	spacing    float64
}

func newBiomeField(p *Params) *biomeField {
	f := &biomeField{
		part:    p.Partition,
		biomes:  p.Biomes,
		seed:    p.Seed,
		spacing: p.Partition.CellSizeMax,
	}
	if f.spacing <= 0 {
		f.spacing = 1
	}
	for _, b := range p.Biomes {
		if b.SpawnWeight > 0 {
			f.totalSpawn += b.SpawnWeight
		}
	}
	return f
}

// site returns the jittered site position, local cell size and voted biome
// index for a partition cell. Fully determined by the cell coordinate.
func (f *biomeField) site(cx, cz int) (sx, sz, size float64, biome int) {
	size = f.part.CellSizeMin +
		hash01(int64(cx), int64(cz), f.seed+11)*(f.part.CellSizeMax-f.part.CellSizeMin)
	if size <= 0 {
		size = f.spacing
	}

	jx := (hash01(int64(cx), int64(cz), f.seed+12) - 0.5) * 2 * f.part.Jitter * size
	jz := (hash01(int64(cx), int64(cz), f.seed+13) - 0.5) * 2 * f.part.Jitter * size
	sx = (float64(cx)+0.5)*f.spacing + jx
	sz = (float64(cz)+0.5)*f.spacing + jz

	biome = f.drawBiome(cx, cz)
	return
}

// drawBiome picks a biome index by spawn-weighted draw keyed on the cell
// coordinate hash.
func (f *biomeField) drawBiome(cx, cz int) int {
	if f.totalSpawn <= 0 {
		return 0
	}
	r := hash01(int64(cx), int64(cz), f.seed+14) * f.totalSpawn
	for i, b := range f.biomes {
		if b.SpawnWeight <= 0 {
			continue
		}
		r -= b.SpawnWeight
		if r < 0 {
			return i
		}
	}
	return len(f.biomes) - 1
}

// weightsAt fills out with the normalized biome weight vector for a world
// column. out must have len(biomes) entries; entries sum to 1.
func (f *biomeField) weightsAt(x, z float64, out []float64) {
	for i := range out {
		out[i] = 0
	}
	if len(f.biomes) == 0 {
		return
	}

	ccx := int(math.Floor(x / f.spacing))
	ccz := int(math.Floor(z / f.spacing))
	r := f.part.SearchCells
	if r < 1 {
		r = 1
	}

	sum := 0.0
	for dcx := -r; dcx <= r; dcx++ {
		for dcz := -r; dcz <= r; dcz++ {
			sx, sz, size, biome := f.site(ccx+dcx, ccz+dcz)
			sigma := f.part.SigmaFactor * size
			if sigma <= 0 {
				continue
			}
			dx := x - sx
			dz := z - sz
			w := math.Exp(-(dx*dx + dz*dz) / (2 * sigma * sigma))
			out[biome] += w
			sum += w
		}
	}

	if sum <= 0 {
		// No site in range; fall back to the cell's own vote.
		out[f.drawBiome(ccx, ccz)] = 1
		return
	}
	for i := range out {
		out[i] /= sum
	}

	// Sharpen boundaries: raise to the hardness exponent, renormalize.
	h := f.part.Hardness
	if h > 0 && h != 1 {
		sum = 0
		for i := range out {
			out[i] = math.Pow(out[i], h)
			sum += out[i]
		}
		if sum > 0 {
			for i := range out {
				out[i] /= sum
			}
		}
	}
}

// DominantBiome returns the index of the highest-weight biome at a world
// column. Structure placement uses it to apply biome filters.
func DominantBiome(p *Params, worldX, worldZ int) int {
	f := newBiomeField(p)
	out := make([]float64, len(p.Biomes))
	f.weightsAt(float64(worldX), float64(worldZ), out)
	best := 0
	for i, w := range out {
		if w > out[best] {
			best = i
		}
	}
	return best
}
