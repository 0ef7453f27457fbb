package gen

import (
	"github.com/google/uuid"

	"voxelstream/internal/vec"
	"voxelstream/internal/world/block"
)

// SurfaceRule selects how a biome picks its surface block.
type SurfaceRule int

const (
	SurfaceDefault SurfaceRule = iota
	SurfaceOcean
	SurfaceMountain
)

// Layer is one entry of a biome's subsurface stack, applied top-down under
// the surface block.
type Layer struct {
	Block     block.ID
	Thickness int
}

// BiomeParams is the immutable per-biome snapshot the generator consumes.
// Externally authored biome definitions are flattened into this before they
// enter the pipeline.
type BiomeParams struct {
	Name        string
	SpawnWeight float64

	Surface      SurfaceRule
	SurfaceBlock block.ID
	SnowLine     int
	BeachBand    int
	Layers       []Layer

	// Terrain shape.
	BaseHeight   float64
	HeightBias   float64
	Amplitude    float64
	Frequency    float64
	Octaves      int
	RidgeMix     float64
	WarpStrength float64
	WarpFreq     float64
}

// PartitionParams controls the jittered-grid biome partition.
type PartitionParams struct {
	CellSizeMin float64
	CellSizeMax float64
	Jitter      float64 // site offset within its cell, fraction of cell size
	SearchCells int     // kernel search radius in cells
	SigmaFactor float64 // kernel bandwidth as a fraction of local cell size
	Hardness    float64 // weight-sharpening exponent
}

// CaveParams is the cave/ravine/worm parameter set.
type CaveParams struct {
	Frequency float64
	Threshold float64

	// Two favored cavern depths, normalized to world height. Centers drift
	// across the world under low-frequency noise.
	BandCenter1 float64
	BandCenter2 float64
	BandSigma   float64
	BandDrift   float64 // drift amplitude
	DriftFreq   float64

	GateFreq      float64
	GateThreshold float64
	DepthBoostTop float64 // normalized depth below which the gate relaxes
	DepthBoost    float64 // threshold reduction at full boost

	RavineFreq      float64
	RavineThreshold float64
	RavineMinDepth  int // depth window below surface
	RavineMaxDepth  int

	WormCellSize   int
	WormMaxPerCell int
	WormMinLength  int
	WormMaxLength  int
	WormRadius     float64
	WormBranchProb float64
	WormMaxBranch  int

	// Two independent draws gate a cave punching through the surface; kept
	// as separate probabilities rather than a combined one.
	SurfaceOpenProb1 float64
	SurfaceOpenProb2 float64
}

// RiverParams shapes carved river channels.
type RiverParams struct {
	Frequency float64
	Width     float64 // 0..1, fraction of the folded band that carves
	MaxDepth  float64 // bed depth below sea level
}

// LakeParams shapes carved lake basins.
type LakeParams struct {
	Frequency float64
	Threshold float64
	MaxDepth  float64
}

// Params carries everything needed to regenerate any chunk deterministically.
// It is shared, read-only, between all generation requests for one world.
type Params struct {
	Width     int
	Height    int
	SeaLevel  int
	Smoothing int
	Seed      int64

	Partition     PartitionParams
	ContinentFreq float64
	ContinentAmp  float64

	Biomes []BiomeParams
	Caves  CaveParams
	River  RiverParams
	Lake   LakeParams

	// FlatSurface, when positive, replaces the whole pipeline with a flat
	// world at that height. Test and benchmark mode.
	FlatSurface int
}

// Request asks a worker to generate one chunk. The ID ties worker log lines
// back to the submitting tick.
type Request struct {
	ID     uuid.UUID
	Coord  vec.ChunkCoord
	Params *Params
}

// Result is the completed flat voxel buffer for a chunk, indexed as
// x + z*Width + y*Width*Width.
type Result struct {
	ID     uuid.UUID
	Coord  vec.ChunkCoord
	Blocks []block.ID
}

// Index converts local voxel coordinates to the flat buffer index.
func Index(x, y, z, width int) int {
	return x + z*width + y*width*width
}
