package gen

import (
	"math"
	"testing"
)

func TestBiomeWeightsNormalized(t *testing.T) {
	p := testParams(777)
	s := NewSampler(p)

	for _, probe := range [][2]int{{0, 0}, {153, -418}, {-2000, 3517}, {99999, 1}} {
		w := s.BiomeWeights(probe[0], probe[1])
		if len(w) != len(p.Biomes) {
			t.Fatalf("weight vector length %d, want %d", len(w), len(p.Biomes))
		}
		sum := 0.0
		for i, v := range w {
			if v < 0 || v > 1 {
				t.Errorf("at %v: weight[%d]=%v out of range", probe, i, v)
			}
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("at %v: weights sum to %v", probe, sum)
		}
	}
}

func TestDominantBiomeStable(t *testing.T) {
	p := testParams(777)
	for _, probe := range [][2]int{{10, 10}, {-500, 250}, {4096, -4096}} {
		a := DominantBiome(p, probe[0], probe[1])
		b := DominantBiome(p, probe[0], probe[1])
		if a != b {
			t.Errorf("at %v: dominant biome flapped %d -> %d", probe, a, b)
		}
		if a < 0 || a >= len(p.Biomes) {
			t.Errorf("at %v: dominant biome index %d out of range", probe, a)
		}
	}
}

func TestSurfaceHeightClamped(t *testing.T) {
	p := testParams(31337)
	s := NewSampler(p)
	for x := -64; x <= 64; x += 16 {
		for z := -64; z <= 64; z += 16 {
			h := s.SurfaceHeight(x, z)
			if h < 1 || h > p.Height-2 {
				t.Errorf("surface at %d,%d = %d outside [1,%d]", x, z, h, p.Height-2)
			}
		}
	}
}

func TestChunkRNGDeterminism(t *testing.T) {
	a := newChunkRNG(42, 3, -7, 907)
	b := newChunkRNG(42, 3, -7, 907)
	for i := 0; i < 100; i++ {
		if a.next() != b.next() {
			t.Fatal("identical streams diverged")
		}
	}
	c := newChunkRNG(42, 3, -6, 907)
	same := true
	for i := 0; i < 10; i++ {
		if a.next() != c.next() {
			same = false
		}
	}
	if same {
		t.Error("neighboring chunk stream matches")
	}
}
