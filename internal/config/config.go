package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"voxelstream/internal/gen"
	"voxelstream/internal/vec"
	"voxelstream/internal/world"
	"voxelstream/internal/world/block"
)

// Config is the on-disk configuration. Every field has a default so an
// absent file or empty document still yields a runnable setup.
type Config struct {
	World      WorldConfig       `yaml:"world"`
	Streaming  StreamingConfig   `yaml:"streaming"`
	Water      WaterConfig       `yaml:"water"`
	Metrics    MetricsConfig     `yaml:"metrics"`
	Biomes     []BiomeConfig     `yaml:"biomes"`
	Structures []StructureConfig `yaml:"structures"`
}

type WorldConfig struct {
	Seed       int64 `yaml:"seed"`
	ChunkWidth int   `yaml:"chunk_width"`
	Height     int   `yaml:"height"`
	SeaLevel   int   `yaml:"sea_level"`
	Smoothing  int   `yaml:"smoothing"`
	// FlatSurface > 0 switches to the flat debug generator.
	FlatSurface int `yaml:"flat_surface"`
}

type StreamingConfig struct {
	Radius        int `yaml:"radius"`
	GenWorkers    int `yaml:"gen_workers"`
	MeshWorkers   int `yaml:"mesh_workers"`
	QueueSize     int `yaml:"queue_size"`
	ApplyBudget   int `yaml:"apply_budget"`
	MeshBudget    int `yaml:"mesh_budget"`
	ColdCacheSize int `yaml:"cold_cache_size"`
}

type WaterConfig struct {
	Budget         int  `yaml:"budget"`
	InfiniteSource bool `yaml:"infinite_source"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type BiomeConfig struct {
	Name         string        `yaml:"name"`
	SpawnWeight  float64       `yaml:"spawn_weight"`
	Surface      string        `yaml:"surface"` // default | ocean | mountain
	SurfaceBlock string        `yaml:"surface_block"`
	SnowLine     int           `yaml:"snow_line"`
	BeachBand    int           `yaml:"beach_band"`
	BaseHeight   float64       `yaml:"base_height"`
	HeightBias   float64       `yaml:"height_bias"`
	Amplitude    float64       `yaml:"amplitude"`
	Frequency    float64       `yaml:"frequency"`
	Octaves      int           `yaml:"octaves"`
	RidgeMix     float64       `yaml:"ridge_mix"`
	WarpStrength float64       `yaml:"warp_strength"`
	WarpFreq     float64       `yaml:"warp_freq"`
	Layers       []LayerConfig `yaml:"layers"`
}

type LayerConfig struct {
	Block     string `yaml:"block"`
	Thickness int    `yaml:"thickness"`
}

type StructureConfig struct {
	Name        string                 `yaml:"name"`
	Biomes      []string               `yaml:"biomes"`
	Anchor      string                 `yaml:"anchor"` // surface | seafloor
	Probability float64                `yaml:"probability"`
	MaxPerChunk int                    `yaml:"max_per_chunk"`
	Attempts    int                    `yaml:"attempts"`
	MinSurface  int                    `yaml:"min_surface"`
	MaxSurface  int                    `yaml:"max_surface"`
	MaxSlope    int                    `yaml:"max_slope"`
	Rotate      bool                   `yaml:"rotate"`
	Blocks      []StructureBlockConfig `yaml:"blocks"`
}

type StructureBlockConfig struct {
	X             int    `yaml:"x"`
	Y             int    `yaml:"y"`
	Z             int    `yaml:"z"`
	Block         string `yaml:"block"`
	OnlyIntoEmpty bool   `yaml:"only_into_empty"`
}

// Default returns the built-in configuration: four biomes, a tree template,
// and streaming tuned for a single observer.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:       1,
			ChunkWidth: 16,
			Height:     128,
			SeaLevel:   18,
			Smoothing:  1,
		},
		Streaming: StreamingConfig{
			Radius:        8,
			GenWorkers:    4,
			MeshWorkers:   2,
			QueueSize:     1024,
			ApplyBudget:   16,
			MeshBudget:    16,
			ColdCacheSize: 512,
		},
		Water: WaterConfig{
			Budget:         64,
			InfiniteSource: true,
		},
		Metrics: MetricsConfig{Addr: ":9190"},
		Biomes: []BiomeConfig{
			{
				Name: "plains", SpawnWeight: 1.0, Surface: "default",
				SurfaceBlock: "grass", BeachBand: 2,
				BaseHeight: 22, Amplitude: 6, Frequency: 0.01, Octaves: 4,
				WarpStrength: 8, WarpFreq: 0.004,
				Layers: []LayerConfig{{Block: "dirt", Thickness: 3}},
			},
			{
				Name: "mountains", SpawnWeight: 0.5, Surface: "mountain",
				SnowLine:   48,
				BaseHeight: 34, HeightBias: 8, Amplitude: 28, Frequency: 0.012,
				Octaves: 5, RidgeMix: 0.7, WarpStrength: 20, WarpFreq: 0.005,
				Layers: []LayerConfig{{Block: "stone", Thickness: 8}},
			},
			{
				Name: "desert", SpawnWeight: 0.6, Surface: "default",
				SurfaceBlock: "sand", BeachBand: 2,
				BaseHeight: 21, Amplitude: 4, Frequency: 0.008, Octaves: 3,
				RidgeMix: 0.1, WarpStrength: 6, WarpFreq: 0.004,
				Layers: []LayerConfig{{Block: "sand", Thickness: 4}, {Block: "gravel", Thickness: 2}},
			},
			{
				Name: "ocean", SpawnWeight: 0.4, Surface: "ocean",
				BaseHeight: 10, Amplitude: 4, Frequency: 0.006, Octaves: 3,
				WarpStrength: 4, WarpFreq: 0.003,
				Layers: []LayerConfig{{Block: "sand", Thickness: 3}, {Block: "gravel", Thickness: 3}},
			},
		},
		Structures: []StructureConfig{
			{
				Name:        "oak_tree",
				Biomes:      []string{"plains"},
				Anchor:      "surface",
				Probability: 0.8,
				MaxPerChunk: 3,
				Attempts:    8,
				MinSurface:  19,
				MaxSurface:  64,
				MaxSlope:    2,
				Rotate:      true,
				Blocks:      treeTemplate(),
			},
		},
	}
}

func treeTemplate() []StructureBlockConfig {
	blocks := []StructureBlockConfig{
		{Y: 0, Block: "log"}, {Y: 1, Block: "log"},
		{Y: 2, Block: "log"}, {Y: 3, Block: "log"},
	}
	for _, y := range []int{3, 4} {
		for dx := -2; dx <= 2; dx++ {
			for dz := -2; dz <= 2; dz++ {
				if dx == 0 && dz == 0 && y == 3 {
					continue
				}
				blocks = append(blocks, StructureBlockConfig{
					X: dx, Y: y, Z: dz, Block: "leaves", OnlyIntoEmpty: true,
				})
			}
		}
	}
	blocks = append(blocks, StructureBlockConfig{Y: 5, Block: "leaves", OnlyIntoEmpty: true})
	return blocks
}

// Load reads a YAML config file layered over the defaults. A missing file
// returns the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.World.ChunkWidth <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("config: chunk dimensions must be positive")
	}
	if c.World.SeaLevel < 0 || c.World.SeaLevel >= c.World.Height {
		return fmt.Errorf("config: sea level %d outside world height %d", c.World.SeaLevel, c.World.Height)
	}
	if len(c.Biomes) == 0 {
		return fmt.Errorf("config: at least one biome required")
	}
	for _, b := range c.Biomes {
		if b.SurfaceBlock != "" {
			if _, ok := block.ByName(b.SurfaceBlock); !ok {
				return fmt.Errorf("config: biome %s: unknown surface block %q", b.Name, b.SurfaceBlock)
			}
		}
		for _, l := range b.Layers {
			if _, ok := block.ByName(l.Block); !ok {
				return fmt.Errorf("config: biome %s: unknown layer block %q", b.Name, l.Block)
			}
		}
	}
	for _, s := range c.Structures {
		for _, sb := range s.Blocks {
			if _, ok := block.ByName(sb.Block); !ok {
				return fmt.Errorf("config: structure %s: unknown block %q", s.Name, sb.Block)
			}
		}
	}
	return nil
}

// GenParams converts the config into the generator's parameter snapshot.
// Partition, cave, river and lake tuning are fixed here; biomes and world
// shape come from the file.
func (c *Config) GenParams() *gen.Params {
	p := &gen.Params{
		Width:       c.World.ChunkWidth,
		Height:      c.World.Height,
		SeaLevel:    c.World.SeaLevel,
		Smoothing:   c.World.Smoothing,
		Seed:        c.World.Seed,
		FlatSurface: c.World.FlatSurface,

		Partition: gen.PartitionParams{
			CellSizeMin: 96,
			CellSizeMax: 192,
			Jitter:      0.4,
			SearchCells: 2,
			SigmaFactor: 0.35,
			Hardness:    2.5,
		},
		ContinentFreq: 0.0008,
		ContinentAmp:  14,

		Caves: gen.CaveParams{
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
		River: gen.RiverParams{
			Frequency: 0.0025,
			Width:     0.06,
			MaxDepth:  5,
		},
		Lake: gen.LakeParams{
			Frequency: 0.004,
			Threshold: 0.78,
			MaxDepth:  4,
		},
	}
	for _, b := range c.Biomes {
		p.Biomes = append(p.Biomes, biomeParams(b))
	}
	return p
}

func biomeParams(b BiomeConfig) gen.BiomeParams {
	bp := gen.BiomeParams{
		Name:         b.Name,
		SpawnWeight:  b.SpawnWeight,
		Surface:      surfaceRule(b.Surface),
		SnowLine:     b.SnowLine,
		BeachBand:    b.BeachBand,
		BaseHeight:   b.BaseHeight,
		HeightBias:   b.HeightBias,
		Amplitude:    b.Amplitude,
		Frequency:    b.Frequency,
		Octaves:      b.Octaves,
		RidgeMix:     b.RidgeMix,
		WarpStrength: b.WarpStrength,
		WarpFreq:     b.WarpFreq,
	}
	if b.SurfaceBlock != "" {
		if id, ok := block.ByName(b.SurfaceBlock); ok {
			bp.SurfaceBlock = id
		}
	}
	for _, l := range b.Layers {
		id, _ := block.ByName(l.Block)
		bp.Layers = append(bp.Layers, gen.Layer{Block: id, Thickness: l.Thickness})
	}
	return bp
}

func surfaceRule(s string) gen.SurfaceRule {
	switch s {
	case "ocean":
		return gen.SurfaceOcean
	case "mountain":
		return gen.SurfaceMountain
	default:
		return gen.SurfaceDefault
	}
}

// StructureDefs converts the structure templates for the streaming manager.
func (c *Config) StructureDefs() []world.StructureDef {
	var defs []world.StructureDef
	for _, s := range c.Structures {
		def := world.StructureDef{
			Name:        s.Name,
			Biomes:      s.Biomes,
			Probability: s.Probability,
			MaxPerChunk: s.MaxPerChunk,
			Attempts:    s.Attempts,
			MinSurface:  s.MinSurface,
			MaxSurface:  s.MaxSurface,
			MaxSlope:    s.MaxSlope,
			Rotate:      s.Rotate,
		}
		if s.Anchor == "seafloor" {
			def.Anchor = world.AnchorSeafloor
		}
		for _, sb := range s.Blocks {
			id, _ := block.ByName(sb.Block)
			def.Blocks = append(def.Blocks, world.StructureBlock{
				Offset:        vec.Pos{X: sb.X, Y: sb.Y, Z: sb.Z},
				Block:         id,
				OnlyIntoEmpty: sb.OnlyIntoEmpty,
			})
		}
		defs = append(defs, def)
	}
	return defs
}

// ManagerOptions converts the streaming and water sections.
func (c *Config) ManagerOptions() world.Options {
	return world.Options{
		Radius:         c.Streaming.Radius,
		GenWorkers:     c.Streaming.GenWorkers,
		MeshWorkers:    c.Streaming.MeshWorkers,
		QueueSize:      c.Streaming.QueueSize,
		ApplyBudget:    c.Streaming.ApplyBudget,
		MeshBudget:     c.Streaming.MeshBudget,
		WaterBudget:    c.Water.Budget,
		InfiniteSource: c.Water.InfiniteSource,
		ColdCacheSize:  c.Streaming.ColdCacheSize,
	}
}
