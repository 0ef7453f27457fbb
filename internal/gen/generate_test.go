package gen

import (
	"crypto/sha256"
	"testing"

	"github.com/google/uuid"

	"voxelstream/internal/vec"
	"voxelstream/internal/world/block"
)

func testParams(seed int64) *Params {
	return &Params{
		Width:     16,
		Height:    64,
		SeaLevel:  18,
		Smoothing: 1,
		Seed:      seed,
		Partition: PartitionParams{
			CellSizeMin: 96,
			CellSizeMax: 192,
			Jitter:      0.4,
			SearchCells: 2,
			SigmaFactor: 0.35,
			Hardness:    2.5,
		},
		ContinentFreq: 0.0008,
		ContinentAmp:  14,
		Biomes: []BiomeParams{
			{
				Name: "plains", SpawnWeight: 1.0, Surface: SurfaceDefault,
				SurfaceBlock: block.Grass, BeachBand: 2,
				BaseHeight: 22, Amplitude: 6, Frequency: 0.01, Octaves: 4,
				WarpStrength: 8, WarpFreq: 0.004,
				Layers: []Layer{{Block: block.Dirt, Thickness: 3}},
			},
			{
				Name: "ocean", SpawnWeight: 0.4, Surface: SurfaceOcean,
				BaseHeight: 10, Amplitude: 4, Frequency: 0.006, Octaves: 3,
				WarpStrength: 4, WarpFreq: 0.003,
				Layers: []Layer{{Block: block.Sand, Thickness: 3}},
			},
		},
		Caves: CaveParams{
			Frequency:     0.05,
			Threshold:     0.62,
			BandCenter1:   0.15,
			BandCenter2:   0.45,
			BandSigma:     0.12,
			BandDrift:     0.08,
			DriftFreq:     0.01,
			GateFreq:      0.004,
			GateThreshold: 0.55,
			DepthBoostTop: 0.25,
			DepthBoost:    0.12,

			RavineFreq:      0.0035,
			RavineThreshold: 0.92,
			RavineMinDepth:  8,
			RavineMaxDepth:  36,

			WormCellSize:   48,
			WormMaxPerCell: 2,
			WormMinLength:  40,
			WormMaxLength:  110,
			WormRadius:     2.4,
			WormBranchProb: 0.25,
			WormMaxBranch:  2,

			SurfaceOpenProb1: 0.02,
			SurfaceOpenProb2: 0.01,
		},
		River: RiverParams{Frequency: 0.0025, Width: 0.06, MaxDepth: 5},
		Lake:  LakeParams{Frequency: 0.004, Threshold: 0.78, MaxDepth: 4},
	}
}

func hashBlocks(blocks []block.ID) [32]byte {
	h := sha256.New()
	for _, b := range blocks {
		h.Write([]byte{byte(b)})
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Identical seed, coordinate and parameters must replay byte for byte.
func TestGenerateDeterminism(t *testing.T) {
	p := testParams(12345)
	for _, coord := range []vec.ChunkCoord{{X: 0, Z: 0}, {X: -3, Z: 7}, {X: 12, Z: -4}} {
		a := Generate(Request{ID: uuid.New(), Coord: coord, Params: p})
		b := Generate(Request{ID: uuid.New(), Coord: coord, Params: p})
		if hashBlocks(a.Blocks) != hashBlocks(b.Blocks) {
			t.Errorf("chunk %v: repeated generation differs", coord)
		}
	}
}

func TestGenerateSeedChangesOutput(t *testing.T) {
	coord := vec.ChunkCoord{X: 0, Z: 0}
	a := Generate(Request{ID: uuid.New(), Coord: coord, Params: testParams(12345)})
	b := Generate(Request{ID: uuid.New(), Coord: coord, Params: testParams(54321)})
	if hashBlocks(a.Blocks) == hashBlocks(b.Blocks) {
		t.Error("different seeds produced identical chunks")
	}
}

func TestGenerateColumnBounds(t *testing.T) {
	p := testParams(12345)
	res := Generate(Request{ID: uuid.New(), Coord: vec.ChunkCoord{}, Params: p})
	if len(res.Blocks) != p.Width*p.Width*p.Height {
		t.Fatalf("buffer length %d, want %d", len(res.Blocks), p.Width*p.Width*p.Height)
	}
	for lx := 0; lx < p.Width; lx++ {
		for lz := 0; lz < p.Width; lz++ {
			if b := res.Blocks[Index(lx, 0, lz, p.Width)]; b != block.Bedrock {
				t.Errorf("column %d,%d: bottom is %v, want bedrock", lx, lz, b)
			}
			if b := res.Blocks[Index(lx, p.Height-1, lz, p.Width)]; b != block.Air {
				t.Errorf("column %d,%d: top is %v, want air", lx, lz, b)
			}
		}
	}
}

// Water never appears above sea level; terrain fill only places it in the
// gap between surface and sea level.
func TestGenerateNoWaterAboveSeaLevel(t *testing.T) {
	p := testParams(12345)
	for _, coord := range []vec.ChunkCoord{{X: 0, Z: 0}, {X: 5, Z: -2}, {X: -8, Z: 3}} {
		res := Generate(Request{ID: uuid.New(), Coord: coord, Params: p})
		for y := p.SeaLevel + 1; y < p.Height; y++ {
			for lx := 0; lx < p.Width; lx++ {
				for lz := 0; lz < p.Width; lz++ {
					if res.Blocks[Index(lx, y, lz, p.Width)] == block.Water {
						t.Fatalf("chunk %v: water at %d,%d,%d above sea level %d",
							coord, lx, y, lz, p.SeaLevel)
					}
				}
			}
		}
	}
}

// A world of nothing but ocean biome sits below sea level, so every column
// gets a sand floor under a water fill.
func TestGenerateOceanFill(t *testing.T) {
	p := testParams(99)
	p.Biomes = p.Biomes[1:2] // ocean only
	p.ContinentAmp = 0
	res := Generate(Request{ID: uuid.New(), Coord: vec.ChunkCoord{X: 2, Z: 2}, Params: p})

	for lx := 0; lx < p.Width; lx++ {
		for lz := 0; lz < p.Width; lz++ {
			// Find the terrain surface: topmost non-air, non-water block.
			surface := -1
			for y := p.Height - 1; y >= 0; y-- {
				b := res.Blocks[Index(lx, y, lz, p.Width)]
				if b != block.Air && b != block.Water {
					surface = y
					break
				}
			}
			if surface < 0 {
				t.Fatalf("column %d,%d: no terrain", lx, lz)
			}
			if surface >= p.SeaLevel {
				t.Fatalf("column %d,%d: ocean surface %d at or above sea level", lx, lz, surface)
			}
			for y := surface + 1; y <= p.SeaLevel; y++ {
				if b := res.Blocks[Index(lx, y, lz, p.Width)]; b != block.Water {
					t.Fatalf("column %d,%d: expected water at %d, got %v", lx, lz, y, b)
				}
			}
		}
	}
}

func TestGenerateFlat(t *testing.T) {
	p := testParams(1)
	p.FlatSurface = 5
	res := Generate(Request{ID: uuid.New(), Coord: vec.ChunkCoord{}, Params: p})

	checks := []struct {
		y    int
		want block.ID
	}{
		{0, block.Bedrock},
		{1, block.Dirt},
		{4, block.Dirt},
		{5, block.Grass},
		{6, block.Air},
	}
	for _, c := range checks {
		if b := res.Blocks[Index(3, c.y, 9, p.Width)]; b != c.want {
			t.Errorf("flat world y=%d: got %v, want %v", c.y, b, c.want)
		}
	}
}
