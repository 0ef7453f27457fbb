package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"voxelstream/internal/world"
	"voxelstream/internal/world/block"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.validate())
	require.NotEmpty(t, cfg.Biomes)
	require.NotEmpty(t, cfg.Structures)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default().World.SeaLevel, cfg.World.SeaLevel)
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
world:
  seed: 99
  sea_level: 20
streaming:
  radius: 4
water:
  infinite_source: false
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, int64(99), cfg.World.Seed)
	require.Equal(t, 20, cfg.World.SeaLevel)
	require.Equal(t, 4, cfg.Streaming.Radius)
	require.False(t, cfg.Water.InfiniteSource)
	// Untouched sections keep their defaults.
	require.Equal(t, Default().World.ChunkWidth, cfg.World.ChunkWidth)
	require.Len(t, cfg.Biomes, len(Default().Biomes))
}

func TestLoadRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
world:
  sea_level: 4096
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsUnknownBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
biomes:
  - name: broken
    spawn_weight: 1
    layers:
      - block: adamantium
        thickness: 2
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "adamantium")
}

func TestGenParamsConversion(t *testing.T) {
	cfg := Default()
	p := cfg.GenParams()

	require.Equal(t, cfg.World.ChunkWidth, p.Width)
	require.Equal(t, cfg.World.Height, p.Height)
	require.Equal(t, cfg.World.SeaLevel, p.SeaLevel)
	require.Len(t, p.Biomes, len(cfg.Biomes))

	var plains, ocean int
	for i, b := range p.Biomes {
		switch b.Name {
		case "plains":
			plains = i
		case "ocean":
			ocean = i
		}
	}
	require.Equal(t, block.Grass, p.Biomes[plains].SurfaceBlock)
	require.NotEmpty(t, p.Biomes[plains].Layers)
	require.Equal(t, block.Dirt, p.Biomes[plains].Layers[0].Block)
	require.Equal(t, "ocean", p.Biomes[ocean].Name)
}

func TestStructureDefsConversion(t *testing.T) {
	cfg := Default()
	defs := cfg.StructureDefs()
	require.Len(t, defs, 1)

	tree := defs[0]
	require.Equal(t, "oak_tree", tree.Name)
	require.Equal(t, world.AnchorSurface, tree.Anchor)
	require.True(t, tree.Rotate)
	require.NotEmpty(t, tree.Blocks)
	require.Equal(t, block.Log, tree.Blocks[0].Block)
}
