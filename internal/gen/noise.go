package gen

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Gradient-noise primitives for terrain shaping. A noiseField wraps a single
// Perlin lattice; fractal summation, ridging and domain warping are layered
// on top so each caller controls octave count and character.

type noiseField struct {
	p *perlin.Perlin
}

func newNoiseField(seed int64) *noiseField {
	// alpha/beta only matter for go-perlin's internal octave loop; with a
	// single iteration this is a plain gradient lattice.
	return &noiseField{p: perlin.NewPerlin(2.0, 2.0, 1, seed)}
}

// at2 samples raw 2D noise in roughly [-1,1].
func (f *noiseField) at2(x, z float64) float64 {
	return f.p.Noise2D(x, z)
}

// at3 samples raw 3D noise in roughly [-1,1].
func (f *noiseField) at3(x, y, z float64) float64 {
	return f.p.Noise3D(x, y, z)
}

// fractal2 sums octaves of 2D noise, normalized to [0,1].
func (f *noiseField) fractal2(x, z float64, octaves int, persistence, lacunarity float64) float64 {
	if octaves <= 0 {
		return 0.5
	}
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for range octaves {
		sum += f.at2(x*frequency, z*frequency) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0.5
	}
	return (sum/norm + 1) / 2
}

// ridged2 folds each octave around zero so crests become sharp ridges.
// Result in [0,1], 1 at ridge lines.
func (f *noiseField) ridged2(x, z float64, octaves int, persistence, lacunarity float64) float64 {
	if octaves <= 0 {
		return 0
	}
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for range octaves {
		sum += (1 - math.Abs(f.at2(x*frequency, z*frequency))) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// fractal3 sums octaves of 3D noise, normalized to [0,1].
func (f *noiseField) fractal3(x, y, z float64, octaves int, persistence, lacunarity float64) float64 {
	if octaves <= 0 {
		return 0.5
	}
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for range octaves {
		sum += f.at3(x*frequency, y*frequency, z*frequency) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0.5
	}
	return (sum/norm + 1) / 2
}

// noiseSet bundles the independent noise sources a generation run needs.
// Each purpose gets its own seed offset so fields are decorrelated, the
// same scheme the seed+N constructors elsewhere in the package rely on.
type noiseSet struct {
	height    *noiseField
	warp      *noiseField
	continent *noiseField
	river     *noiseField
	lake      *noiseField
	cave      *noiseField
	caveGate  *noiseField
	bandDrift *noiseField
	ravine    *noiseField
	worm      *noiseField
}

func newNoiseSet(seed int64) *noiseSet {
	return &noiseSet{
		height:    newNoiseField(seed),
		warp:      newNoiseField(seed + 100),
		continent: newNoiseField(seed + 200),
		river:     newNoiseField(seed + 300),
		lake:      newNoiseField(seed + 400),
		cave:      newNoiseField(seed + 500),
		caveGate:  newNoiseField(seed + 600),
		bandDrift: newNoiseField(seed + 700),
		ravine:    newNoiseField(seed + 800),
		worm:      newNoiseField(seed + 900),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// smoothstep maps v through the classic cubic ease between edge0 and edge1.
func smoothstep(edge0, edge1, v float64) float64 {
	if edge0 == edge1 {
		if v < edge0 {
			return 0
		}
		return 1
	}
	t := clamp((v-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
