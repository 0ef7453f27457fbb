package world

import (
	"voxelstream/internal/vec"
	"voxelstream/internal/world/block"
)

// AnchorRule decides which surface a structure snaps to.
type AnchorRule int

const (
	AnchorSurface  AnchorRule = iota // first solid block under open air
	AnchorSeafloor                   // first solid block under water
)

// StructureBlock is one voxel of a template, offset from the anchor.
type StructureBlock struct {
	Offset        vec.Pos
	Block         block.ID
	OnlyIntoEmpty bool
}

// StructureDef is an externally configured multi-block template with its
// placement constraints.
type StructureDef struct {
	Name        string
	Biomes      []string // empty means any biome
	Anchor      AnchorRule
	Probability float64 // chance per chunk to attempt placement at all
	MaxPerChunk int
	Attempts    int
	MinSurface  int
	MaxSurface  int
	MaxSlope    int
	Blocks      []StructureBlock
	Rotate      bool
}

func (d *StructureDef) allowsBiome(name string) bool {
	if len(d.Biomes) == 0 {
		return true
	}
	for _, b := range d.Biomes {
		if b == name {
			return true
		}
	}
	return false
}

// rotateOffset spins an offset around the anchor's Y axis by quarter turns.
func rotateOffset(o vec.Pos, quarter int) vec.Pos {
	switch quarter & 3 {
	case 1:
		return vec.Pos{X: -o.Z, Y: o.Y, Z: o.X}
	case 2:
		return vec.Pos{X: -o.X, Y: o.Y, Z: -o.Z}
	case 3:
		return vec.Pos{X: o.Z, Y: o.Y, Z: -o.X}
	default:
		return o
	}
}

// reservation is an axis-aligned box claimed by a stamped structure.
// Reservations accumulate for the life of the process.
type reservation struct {
	min, max vec.Pos
}

func (r reservation) overlaps(o reservation) bool {
	return r.min.X <= o.max.X && r.max.X >= o.min.X &&
		r.min.Y <= o.max.Y && r.max.Y >= o.min.Y &&
		r.min.Z <= o.max.Z && r.max.Z >= o.min.Z
}

// templateBounds computes the world-space box a rotated template would
// occupy at anchor.
func templateBounds(def *StructureDef, anchor vec.Pos, quarter int) reservation {
	res := reservation{min: anchor, max: anchor}
	for _, sb := range def.Blocks {
		p := anchor.Add(rotateOffset(sb.Offset, quarter))
		if p.X < res.min.X {
			res.min.X = p.X
		}
		if p.Y < res.min.Y {
			res.min.Y = p.Y
		}
		if p.Z < res.min.Z {
			res.min.Z = p.Z
		}
		if p.X > res.max.X {
			res.max.X = p.X
		}
		if p.Y > res.max.Y {
			res.max.Y = p.Y
		}
		if p.Z > res.max.Z {
			res.max.Z = p.Z
		}
	}
	return res
}

// pendingWrite is a structure voxel targeting a chunk that was not ready
// when the structure was stamped. It is flushed when that chunk's voxels
// arrive.
type pendingWrite struct {
	pos           vec.Pos // world space
	block         block.ID
	onlyIntoEmpty bool
}
