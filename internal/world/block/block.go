package block

// ID is the block-type code stored per voxel.
type ID uint8

const (
	Air ID = iota
	Grass
	Dirt
	Stone
	Sand
	Gravel
	Snow
	Bedrock
	Water
	Log
	Leaves

	Count
)

// Face identifies one of the six faces of a voxel.
type Face int

const (
	FaceEast   Face = iota // +X
	FaceWest               // -X
	FaceTop                // +Y
	FaceBottom             // -Y
	FaceNorth              // +Z
	FaceSouth              // -Z
)

// FaceCount is the number of faces per voxel.
const FaceCount = 6

// Definition holds the static properties of a block type.
type Definition struct {
	Name        string
	Solid       bool
	Transparent bool
	// Textures holds atlas tile indices per face, ordered as the Face constants.
	Textures [FaceCount]int
}

// uniform builds a face-texture table with the same tile on all six faces.
func uniform(tile int) [FaceCount]int {
	return [FaceCount]int{tile, tile, tile, tile, tile, tile}
}

// column builds a face-texture table with distinct top/bottom tiles and a
// shared side tile, the usual layout for grass-like blocks.
func column(top, side, bottom int) [FaceCount]int {
	return [FaceCount]int{side, side, top, bottom, side, side}
}

var defs = [Count]Definition{
	Air:     {Name: "air"},
	Grass:   {Name: "grass", Solid: true, Textures: column(0, 1, 2)},
	Dirt:    {Name: "dirt", Solid: true, Textures: uniform(2)},
	Stone:   {Name: "stone", Solid: true, Textures: uniform(3)},
	Sand:    {Name: "sand", Solid: true, Textures: uniform(4)},
	Gravel:  {Name: "gravel", Solid: true, Textures: uniform(5)},
	Snow:    {Name: "snow", Solid: true, Textures: column(6, 7, 2)},
	Bedrock: {Name: "bedrock", Solid: true, Textures: uniform(8)},
	Water:   {Name: "water", Solid: false, Transparent: true, Textures: uniform(9)},
	Log:     {Name: "log", Solid: true, Textures: column(10, 11, 10)},
	Leaves:  {Name: "leaves", Solid: true, Transparent: true, Textures: uniform(12)},
}

// Get returns the definition for a block type. Unknown codes map to air.
func Get(id ID) Definition {
	if id >= Count {
		return defs[Air]
	}
	return defs[id]
}

// IsSolid reports whether the block occupies its cell for collision and
// face-culling purposes.
func IsSolid(id ID) bool { return Get(id).Solid }

// IsTransparent reports whether light passes through the block.
func IsTransparent(id ID) bool { return Get(id).Transparent }

// IsOpaque reports whether the block is a fully opaque solid.
func IsOpaque(id ID) bool {
	d := Get(id)
	return d.Solid && !d.Transparent
}

// ByName resolves a block name used in configuration files. The bool reports
// whether the name is known.
func ByName(name string) (ID, bool) {
	for id := ID(0); id < Count; id++ {
		if defs[id].Name == name {
			return id, true
		}
	}
	return Air, false
}

func (id ID) String() string {
	return Get(id).Name
}
