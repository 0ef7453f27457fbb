// Package vec holds the integer coordinate types shared by the generation,
// meshing and world packages.
package vec

// ChunkCoord identifies a chunk column on the 2D chunk grid.
type ChunkCoord struct {
	X, Z int
}

// Add offsets the coordinate componentwise.
func (c ChunkCoord) Add(o ChunkCoord) ChunkCoord {
	return ChunkCoord{X: c.X + o.X, Z: c.Z + o.Z}
}

// ChebyshevTo returns the square-radius (Chebyshev) distance to other, the
// metric the streaming manager uses for request and eviction radii.
func (c ChunkCoord) ChebyshevTo(other ChunkCoord) int {
	dx := c.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dz := c.Z - other.Z
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}

// Pos is an integer voxel position in world space.
type Pos struct {
	X, Y, Z int
}

// Add offsets the position componentwise.
func (p Pos) Add(o Pos) Pos {
	return Pos{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Neighbors6 returns the six face-adjacent positions.
func (p Pos) Neighbors6() [6]Pos {
	return [6]Pos{
		p.Add(Pos{X: 1}), p.Add(Pos{X: -1}),
		p.Add(Pos{Y: 1}), p.Add(Pos{Y: -1}),
		p.Add(Pos{Z: 1}), p.Add(Pos{Z: -1}),
	}
}

// FloorDiv divides rounding toward negative infinity, the division chunk
// coordinates need for negative world positions.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Mod returns the non-negative remainder of a by b.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
