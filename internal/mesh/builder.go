package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelstream/internal/gen"
	"voxelstream/internal/world/block"
)

// Data is a chunk's renderable surface: positions and UVs per vertex plus a
// triangle index list. Coordinates are local chunk-space integers; uploading
// the buffers is the caller's concern.
type Data struct {
	Positions []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// faceTable maps each face to its neighbor offset and the four quad corners
// relative to the voxel origin, wound counter-clockwise seen from outside.
var faceTable = [block.FaceCount]struct {
	dx, dy, dz int
	corners    [4]mgl32.Vec3
}{
	block.FaceEast: {1, 0, 0, [4]mgl32.Vec3{
		{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}},
	block.FaceWest: {-1, 0, 0, [4]mgl32.Vec3{
		{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	block.FaceTop: {0, 1, 0, [4]mgl32.Vec3{
		{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}},
	block.FaceBottom: {0, -1, 0, [4]mgl32.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	block.FaceNorth: {0, 0, 1, [4]mgl32.Vec3{
		{1, 0, 1}, {0, 0, 1}, {0, 1, 1}, {1, 1, 1}}},
	block.FaceSouth: {0, 0, -1, [4]mgl32.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}},
}

// Build converts a flat voxel snapshot into surface buffers. Neighbor
// lookups beyond the snapshot bounds see empty space, so chunk-edge faces
// are always emitted; stitching against neighbor chunks is handled by those
// chunks rebuilding independently.
func Build(snapshot []block.ID, width, height int) Data {
	var d Data

	at := func(x, y, z int) block.ID {
		if x < 0 || x >= width || y < 0 || y >= height || z < 0 || z >= width {
			return block.Air
		}
		return snapshot[gen.Index(x, y, z, width)]
	}

	for y := 0; y < height; y++ {
		for z := 0; z < width; z++ {
			for x := 0; x < width; x++ {
				b := at(x, y, z)
				if b == block.Air {
					continue
				}
				def := block.Get(b)
				for face := block.Face(0); face < block.FaceCount; face++ {
					ft := &faceTable[face]
					n := at(x+ft.dx, y+ft.dy, z+ft.dz)
					if !DrawFace(b, n) {
						continue
					}
					emitFace(&d, x, y, z, face, def.Textures[face])
				}
			}
		}
	}
	return d
}

// DrawFace is the per-face visibility rule, evaluated for a block b against
// its direct neighbor n:
//   - identical types never share a drawn face
//   - water draws only against empty space or a fully opaque solid
//   - a transparent non-water block draws against empty space or any solid
//   - an opaque block draws against empty space or a transparent neighbor
func DrawFace(b, n block.ID) bool {
	if b == n || b == block.Air {
		return false
	}
	if n == block.Air {
		return true
	}
	switch {
	case b == block.Water:
		return block.IsOpaque(n)
	case block.IsTransparent(b):
		return block.IsSolid(n)
	default:
		return block.IsTransparent(n)
	}
}

func emitFace(d *Data, x, y, z int, face block.Face, tile int) {
	u0, v0, u1, v1 := TileUV(tile)
	uvs := [4]mgl32.Vec2{{u0, v1}, {u1, v1}, {u1, v0}, {u0, v0}}

	base := uint32(len(d.Positions))
	origin := mgl32.Vec3{float32(x), float32(y), float32(z)}
	for i, c := range faceTable[face].corners {
		d.Positions = append(d.Positions, origin.Add(c))
		d.UVs = append(d.UVs, uvs[i])
	}
	d.Indices = append(d.Indices, base, base+1, base+2, base+2, base+3, base)
}
