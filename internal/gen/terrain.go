package gen

import "math"

// Sampler computes blended surface heights for world columns. It is cheap to
// create and caches intermediate heights per column, but is not safe for
// concurrent use; each generation request builds its own.
type Sampler struct {
	p       *Params
	ns      *noiseSet
	bf      *biomeField
	weights []float64
	cache   map[[3]int]float64
}

// NewSampler builds a column sampler for one parameter set.
func NewSampler(p *Params) *Sampler {
	return &Sampler{
		p:       p,
		ns:      newNoiseSet(p.Seed),
		bf:      newBiomeField(p),
		weights: make([]float64, len(p.Biomes)),
		cache:   make(map[[3]int]float64),
	}
}

// BiomeWeights returns the normalized biome weight vector at a world column.
func (s *Sampler) BiomeWeights(x, z int) []float64 {
	out := make([]float64, len(s.p.Biomes))
	s.bf.weightsAt(float64(x), float64(z), out)
	return out
}

// rawHeight blends per-biome shaped noise by biome weight. No smoothing or
// carving yet.
func (s *Sampler) rawHeight(x, z int) float64 {
	s.bf.weightsAt(float64(x), float64(z), s.weights)

	h := 0.0
	for i, w := range s.weights {
		if w <= 0 {
			continue
		}
		b := &s.p.Biomes[i]
		h += w * s.biomeHeight(b, float64(x), float64(z))
	}
	return h
}

// biomeHeight computes one biome's view of the surface at a column:
// domain-warped fractal noise mixed with a ridged variant, scaled by the
// biome's amplitude. Degenerate shape parameters contribute the flat base
// height rather than faulting.
func (s *Sampler) biomeHeight(b *BiomeParams, x, z float64) float64 {
	base := b.BaseHeight + b.HeightBias
	if b.Frequency <= 0 || b.Octaves <= 0 {
		return base
	}

	wx, wz := x, z
	if b.WarpStrength != 0 && b.WarpFreq > 0 {
		wx += s.ns.warp.at2(x*b.WarpFreq, z*b.WarpFreq) * b.WarpStrength
		wz += s.ns.warp.at2(x*b.WarpFreq+517.31, z*b.WarpFreq-293.77) * b.WarpStrength
	}

	plain := s.ns.height.fractal2(wx*b.Frequency, wz*b.Frequency, b.Octaves, 0.5, 2.0)*2 - 1
	ridge := s.ns.height.ridged2(wx*b.Frequency, wz*b.Frequency, b.Octaves, 0.5, 2.0)*2 - 1
	n := lerp(plain, ridge, clamp(b.RidgeMix, 0, 1))

	return base + n*b.Amplitude
}

// levelHeight is rawHeight after k rounds of cardinal-neighbor averaging.
// The cache keeps the cross-shaped recursion from re-sampling columns.
func (s *Sampler) levelHeight(k, x, z int) float64 {
	key := [3]int{k, x, z}
	if h, ok := s.cache[key]; ok {
		return h
	}
	var h float64
	if k <= 0 {
		h = s.rawHeight(x, z)
	} else {
		h = (s.levelHeight(k-1, x, z) +
			s.levelHeight(k-1, x+1, z) +
			s.levelHeight(k-1, x-1, z) +
			s.levelHeight(k-1, x, z+1) +
			s.levelHeight(k-1, x, z-1)) / 5
	}
	s.cache[key] = h
	return h
}

// HeightAt returns the final surface height for a world column: blended
// biome height, seam smoothing, continent sink, then river and lake carves.
func (s *Sampler) HeightAt(x, z int) float64 {
	h := s.levelHeight(s.p.Smoothing, x, z)

	// Continent sink: broad low-frequency noise through a smooth step
	// carves ocean basins.
	if s.p.ContinentFreq > 0 && s.p.ContinentAmp > 0 {
		c := s.ns.continent.fractal2(float64(x)*s.p.ContinentFreq, float64(z)*s.p.ContinentFreq, 2, 0.5, 2.0)
		h -= smoothstep(0.55, 0.85, c) * s.p.ContinentAmp
	}

	h = s.carveRiver(x, z, h)
	h = s.carveLake(x, z, h)
	return h
}

// SurfaceHeight is HeightAt floored and clamped into the voxel range.
func (s *Sampler) SurfaceHeight(x, z int) int {
	h := int(math.Floor(s.HeightAt(x, z)))
	if h < 1 {
		h = 1
	}
	if h > s.p.Height-2 {
		h = s.p.Height - 2
	}
	return h
}

// carveRiver pulls the surface toward a bed below sea level where the folded
// river band exceeds its width threshold. The pull is proportional to channel
// strength and damped by local relief so channels fade into steep terrain.
func (s *Sampler) carveRiver(x, z int, h float64) float64 {
	r := &s.p.River
	if r.Frequency <= 0 || r.Width <= 0 || r.MaxDepth <= 0 {
		return h
	}
	n := s.ns.river.fractal2(float64(x)*r.Frequency, float64(z)*r.Frequency, 2, 0.5, 2.0)
	band := 1 - 2*math.Abs(n-0.5)
	band = smoothstep(0, 1, band)

	thr := 1 - clamp(r.Width, 0, 1)
	if band <= thr {
		return h
	}
	strength := (band - thr) / (1 - thr)

	relief := math.Max(0, h-float64(s.p.SeaLevel))
	damp := 1 / (1 + relief/24)

	bed := float64(s.p.SeaLevel) - r.MaxDepth
	return lerp(h, bed, clamp(strength*damp, 0, 1))
}

// carveLake pulls the surface toward a basin floor where low-frequency lake
// noise exceeds its threshold, harder the further past the threshold.
func (s *Sampler) carveLake(x, z int, h float64) float64 {
	l := &s.p.Lake
	if l.Frequency <= 0 || l.MaxDepth <= 0 || l.Threshold >= 1 {
		return h
	}
	n := s.ns.lake.fractal2(float64(x)*l.Frequency, float64(z)*l.Frequency, 2, 0.5, 2.0)
	if n <= l.Threshold {
		return h
	}
	t := (n - l.Threshold) / (1 - l.Threshold)

	floor := float64(s.p.SeaLevel) - l.MaxDepth
	return lerp(h, floor, clamp(t, 0, 1))
}
