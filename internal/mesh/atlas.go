package mesh

// Tile atlas addressing. Tiles are laid out on a square grid in an image
// whose origin is top-left, so the row index is flipped before converting to
// UV space. Each coordinate is inset by a small epsilon to keep samples away
// from neighboring tiles.

const (
	// TilesPerRow is the atlas grid dimension.
	TilesPerRow = 16

	// uvEpsilon insets tile UVs to avoid bleeding at tile seams.
	uvEpsilon = 1.0 / 1024.0
)

// TileUV returns the inset UV rectangle (u0,v0)-(u1,v1) for an atlas tile
// index. Indices outside the atlas wrap, so a bad texture id shows a wrong
// tile instead of failing.
func TileUV(tile int) (u0, v0, u1, v1 float32) {
	if tile < 0 {
		tile = 0
	}
	tile %= TilesPerRow * TilesPerRow

	col := tile % TilesPerRow
	row := tile / TilesPerRow
	// Flip rows: tile 0 sits at the top-left of the image.
	row = TilesPerRow - 1 - row

	step := float32(1.0) / TilesPerRow
	u0 = float32(col)*step + uvEpsilon
	v0 = float32(row)*step + uvEpsilon
	u1 = float32(col+1)*step - uvEpsilon
	v1 = float32(row+1)*step - uvEpsilon
	return
}
