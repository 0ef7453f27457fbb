package mesh

import (
	"testing"

	"voxelstream/internal/gen"
	"voxelstream/internal/world/block"
)

func TestDrawFaceRule(t *testing.T) {
	cases := []struct {
		name string
		b, n block.ID
		want bool
	}{
		{"identical solids", block.Stone, block.Stone, false},
		{"identical water", block.Water, block.Water, false},
		{"air emits nothing", block.Air, block.Stone, false},

		{"solid vs air", block.Stone, block.Air, true},
		{"water vs air", block.Water, block.Air, true},
		{"leaves vs air", block.Leaves, block.Air, true},

		{"water vs opaque", block.Water, block.Stone, true},
		{"water vs leaves", block.Water, block.Leaves, false},

		{"leaves vs opaque", block.Leaves, block.Stone, true},
		{"leaves vs water", block.Leaves, block.Water, false},

		{"opaque vs opaque", block.Stone, block.Dirt, false},
		{"opaque vs water", block.Stone, block.Water, true},
		{"opaque vs leaves", block.Stone, block.Leaves, true},
	}
	for _, c := range cases {
		if got := DrawFace(c.b, c.n); got != c.want {
			t.Errorf("%s: DrawFace(%v, %v) = %v, want %v", c.name, c.b, c.n, got, c.want)
		}
	}
}

func snapshot(width, height int, fill func(x, y, z int) block.ID) []block.ID {
	s := make([]block.ID, width*width*height)
	for y := 0; y < height; y++ {
		for z := 0; z < width; z++ {
			for x := 0; x < width; x++ {
				s[gen.Index(x, y, z, width)] = fill(x, y, z)
			}
		}
	}
	return s
}

func TestBuildSingleBlock(t *testing.T) {
	s := snapshot(3, 3, func(x, y, z int) block.ID {
		if x == 1 && y == 1 && z == 1 {
			return block.Stone
		}
		return block.Air
	})
	d := Build(s, 3, 3)

	if got := len(d.Positions); got != 24 {
		t.Errorf("positions: got %d, want 24", got)
	}
	if got := len(d.UVs); got != 24 {
		t.Errorf("uvs: got %d, want 24", got)
	}
	if got := len(d.Indices); got != 36 {
		t.Errorf("indices: got %d, want 36", got)
	}
	for _, i := range d.Indices {
		if int(i) >= len(d.Positions) {
			t.Fatalf("index %d out of range", i)
		}
	}
}

// Two touching stone cubes must not draw their shared face from either side.
func TestBuildNoInteriorFaces(t *testing.T) {
	s := snapshot(3, 3, func(x, y, z int) block.ID {
		if y == 1 && z == 1 && (x == 0 || x == 1) {
			return block.Stone
		}
		return block.Air
	})
	d := Build(s, 3, 3)

	// 5 exposed faces per cube.
	if got := len(d.Positions) / 4; got != 10 {
		t.Errorf("faces: got %d, want 10", got)
	}
}

// Chunk borders behave as empty space, so a block on the edge still gets
// its outward face.
func TestBuildEdgeFacesDrawn(t *testing.T) {
	s := snapshot(2, 2, func(x, y, z int) block.ID {
		return block.Stone
	})
	d := Build(s, 2, 2)

	// Solid 2x2x2 cube: 6 sides of 4 voxel faces each, none interior.
	if got := len(d.Positions) / 4; got != 24 {
		t.Errorf("faces: got %d, want 24", got)
	}
}

// A water column over sand: water draws against air and the opaque floor,
// sand draws on every side since water is not opaque.
func TestBuildWaterSurface(t *testing.T) {
	s := snapshot(1, 3, func(x, y, z int) block.ID {
		switch y {
		case 0:
			return block.Sand
		case 1:
			return block.Water
		}
		return block.Air
	})
	d := Build(s, 1, 3)

	// Sand: 6 faces (water is not opaque, so the sand/water boundary draws
	// from the sand side). Water: top vs air, four sides vs out-of-bounds
	// empty, bottom vs opaque sand.
	if got := len(d.Positions) / 4; got != 12 {
		t.Errorf("faces: got %d, want 12", got)
	}
}

func TestTileUV(t *testing.T) {
	u0, v0, u1, v1 := TileUV(0)
	if u0 <= 0 || u1 >= 1.0/TilesPerRow {
		t.Errorf("tile 0 u range [%v,%v] not inset within first column", u0, u1)
	}
	// Row flip puts tile 0 at the bottom of UV space (top of the image).
	if v0 <= float32(TilesPerRow-1)/TilesPerRow || v1 >= 1 {
		t.Errorf("tile 0 v range [%v,%v] not in flipped top row", v0, v1)
	}
	if u1 <= u0 || v1 <= v0 {
		t.Errorf("degenerate tile rect [%v,%v]x[%v,%v]", u0, u1, v0, v1)
	}
}
