package gen

// Deterministic integer hashing used wherever the generator needs stable
// per-coordinate randomness without carrying RNG state.

// hash2 mixes a 2D integer coordinate and seed, SplitMix64 style. Stable
// across runs for the same inputs.
func hash2(x, z int64, seed int64) uint64 {
	v := uint64(x) + (uint64(z) << 1) + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// hash01 maps a 2D coordinate hash to [0,1).
func hash01(x, z int64, seed int64) float64 {
	return float64(hash2(x, z, seed)&0xFFFFFFFF) / float64(0x100000000)
}

// chunkRNG is a small LCG seeded from (world seed, chunk coordinate, salt).
// Structure placement and worm tracing draw from it so each chunk's
// decorations replay identically on regeneration.
type chunkRNG struct {
	state int64
}

func newChunkRNG(seed int64, cx, cz int, salt int64) *chunkRNG {
	s := seed ^ (int64(cx)*341873128712 + int64(cz)*132897987541 + salt)
	return &chunkRNG{state: s}
}

func (r *chunkRNG) next() int64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

func (r *chunkRNG) nextN(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.next()>>33) % n
	if v < 0 {
		v = -v
	}
	return v
}

func (r *chunkRNG) nextFloat() float64 {
	return float64(uint64(r.next())>>11) / float64(1<<53)
}

// Rand is the exported face of the per-chunk stream for callers outside the
// generator; structure placement keys its rolls off it.
type Rand struct {
	r chunkRNG
}

func NewRand(seed int64, cx, cz int, salt int64) *Rand {
	return &Rand{r: *newChunkRNG(seed, cx, cz, salt)}
}

func (r *Rand) IntN(n int) int { return r.r.nextN(n) }
func (r *Rand) Float() float64 { return r.r.nextFloat() }
