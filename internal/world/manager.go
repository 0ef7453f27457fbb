package world

import (
	"log"
	"math"

	"github.com/google/uuid"

	"voxelstream/internal/gen"
	"voxelstream/internal/mesh"
	"voxelstream/internal/metrics"
	"voxelstream/internal/profiling"
	"voxelstream/internal/vec"
	"voxelstream/internal/world/block"
)

// Options tunes the streaming manager. Zero values fall back to workable
// defaults.
type Options struct {
	Radius         int // chunk request radius around the observer
	GenWorkers     int
	MeshWorkers    int
	QueueSize      int
	ApplyBudget    int // generation results drained per tick
	MeshBudget     int // mesh results drained per tick
	MeshSubmits    int // mesh jobs submitted per tick
	WaterBudget    int // water cell evaluations per tick
	InfiniteSource bool
	ColdCacheSize  int
	MaxJobsPerCall int
	MaxPending     int // in-flight generation requests at once
}

func (o *Options) fill() {
	if o.Radius <= 0 {
		o.Radius = 8
	}
	if o.GenWorkers <= 0 {
		o.GenWorkers = 4
	}
	if o.MeshWorkers <= 0 {
		o.MeshWorkers = 2
	}
	if o.QueueSize <= 0 {
		o.QueueSize = 1024
	}
	if o.ApplyBudget <= 0 {
		o.ApplyBudget = 16
	}
	if o.MeshBudget <= 0 {
		o.MeshBudget = 16
	}
	if o.MeshSubmits <= 0 {
		o.MeshSubmits = 16
	}
	if o.WaterBudget <= 0 {
		o.WaterBudget = 64
	}
	if o.MaxJobsPerCall <= 0 {
		o.MaxJobsPerCall = 256
	}
	if o.MaxPending <= 0 {
		o.MaxPending = 4096
	}
}

// Manager owns the chunk map and drives the whole pipeline: it requests
// generation, applies results, stamps structures, schedules meshing, and
// steps the water simulation. All of its methods must be called from one
// goroutine; only the worker pools run elsewhere.
type Manager struct {
	params     *gen.Params
	structures []StructureDef
	opts       Options

	registry *ChunkRegistry
	cold     *ColdCache
	water    *WaterSim

	genPool     *gen.WorkerPool
	meshPool    *mesh.WorkerPool
	genResults  chan gen.Result
	meshResults chan mesh.Result

	// inflight maps a coordinate to the request ID whose result we will
	// accept; anything else that arrives for it is stale.
	inflight map[vec.ChunkCoord]uuid.UUID

	pending      map[vec.ChunkCoord][]pendingWrite
	reservations []reservation
}

func NewManager(params *gen.Params, structures []StructureDef, opts Options) *Manager {
	opts.fill()
	m := &Manager{
		params:      params,
		structures:  structures,
		opts:        opts,
		registry:    NewChunkRegistry(),
		cold:        NewColdCache(opts.ColdCacheSize),
		genPool:     gen.NewWorkerPool(opts.GenWorkers, opts.QueueSize),
		meshPool:    mesh.NewWorkerPool(opts.MeshWorkers, opts.QueueSize),
		genResults:  make(chan gen.Result, opts.QueueSize),
		meshResults: make(chan mesh.Result, opts.QueueSize),
		inflight:    make(map[vec.ChunkCoord]uuid.UUID),
		pending:     make(map[vec.ChunkCoord][]pendingWrite),
	}
	m.water = NewWaterSim(m, opts.WaterBudget, opts.InfiniteSource)
	return m
}

// Shutdown stops the worker pools. In-flight jobs are abandoned.
func (m *Manager) Shutdown() {
	m.genPool.Shutdown()
	m.meshPool.Shutdown()
}

func (m *Manager) Registry() *ChunkRegistry { return m.registry }
func (m *Manager) Water() *WaterSim         { return m.water }

// observerChunk converts a world position to the chunk holding it.
func (m *Manager) observerChunk(x, z float64) vec.ChunkCoord {
	w := m.params.Width
	return vec.ChunkCoord{
		X: vec.FloorDiv(int(math.Floor(x)), w),
		Z: vec.FloorDiv(int(math.Floor(z)), w),
	}
}

// RequestChunksAround walks outward in rings from the observer's chunk and
// requests every missing chunk within the radius, center first so close
// terrain arrives before far terrain.
func (m *Manager) RequestChunksAround(x, z float64) {
	defer profiling.Track("world.RequestChunksAround")()
	center := m.observerChunk(x, z)

	pushed := 0
	for r := 0; r <= m.opts.Radius && pushed < m.opts.MaxJobsPerCall; r++ {
		if r == 0 {
			if m.requestChunk(center) {
				pushed++
			}
			continue
		}
		x0, x1 := center.X-r, center.X+r
		z0, z1 := center.Z-r, center.Z+r
		for xk := x0; xk <= x1 && pushed < m.opts.MaxJobsPerCall; xk++ {
			if m.requestChunk(vec.ChunkCoord{X: xk, Z: z0}) {
				pushed++
			}
		}
		for zk := z0 + 1; zk <= z1-1 && pushed < m.opts.MaxJobsPerCall; zk++ {
			if m.requestChunk(vec.ChunkCoord{X: x1, Z: zk}) {
				pushed++
			}
		}
		for xk := x1; xk >= x0 && pushed < m.opts.MaxJobsPerCall; xk-- {
			if m.requestChunk(vec.ChunkCoord{X: xk, Z: z1}) {
				pushed++
			}
		}
		for zk := z1 - 1; zk >= z0+1 && pushed < m.opts.MaxJobsPerCall; zk-- {
			if m.requestChunk(vec.ChunkCoord{X: x0, Z: zk}) {
				pushed++
			}
		}
	}
	metrics.ChunksLive.Set(float64(m.registry.Len()))
}

// requestChunk installs an empty record and schedules generation. Returns
// true when a new generation job was actually queued.
func (m *Manager) requestChunk(coord vec.ChunkCoord) bool {
	if m.registry.Has(coord) {
		return false
	}
	if len(m.inflight) >= m.opts.MaxPending {
		return false
	}
	c := NewChunk(coord, m.params.Width, m.params.Height)
	m.registry.Add(c)

	// A recently evicted chunk can be restored from the cold archive
	// without touching the generator.
	if blocks, ok := m.cold.Take(coord); ok {
		c.Install(blocks)
		m.flushPending(c)
		return false
	}

	req := gen.Request{ID: uuid.New(), Coord: coord, Params: m.params}
	if !m.genPool.Submit(gen.Job{Req: req, ResultChan: m.genResults}) {
		// Queue full; drop the record so a later call retries.
		m.registry.Remove(coord)
		return false
	}
	m.inflight[coord] = req.ID
	return true
}

// Evict removes chunks farther than radius+1 from the observer. The extra
// ring of hysteresis stops chunks at the boundary from thrashing.
func (m *Manager) Evict(x, z float64) int {
	center := m.observerChunk(x, z)
	evicted := m.registry.EvictOutside(center, m.opts.Radius+1)
	for _, c := range evicted {
		if c.Ready {
			m.cold.Put(c.Coord, c.Blocks)
		}
		delete(m.inflight, c.Coord)
		metrics.ChunksEvicted.Inc()
	}
	metrics.ChunksLive.Set(float64(m.registry.Len()))
	return len(evicted)
}

// Tick drains bounded batches of completed work, steps the water
// simulation, and schedules mesh rebuilds for dirty chunks.
func (m *Manager) Tick() {
	defer profiling.Track("world.Tick")()

drainGen:
	for i := 0; i < m.opts.ApplyBudget; i++ {
		select {
		case res := <-m.genResults:
			m.applyGenerated(res)
		default:
			break drainGen
		}
	}

drainMesh:
	for i := 0; i < m.opts.MeshBudget; i++ {
		select {
		case res := <-m.meshResults:
			m.applyMesh(res)
		default:
			break drainMesh
		}
	}

	m.water.Step()
	m.submitMeshJobs()
}

// applyGenerated installs a finished voxel buffer. Results for evicted or
// superseded requests are dropped without comment.
func (m *Manager) applyGenerated(res gen.Result) {
	c, ok := m.registry.Get(res.Coord)
	if !ok || m.inflight[res.Coord] != res.ID {
		metrics.StaleResults.Inc()
		return
	}
	delete(m.inflight, res.Coord)

	c.Install(res.Blocks)
	m.populateStructures(c)
	m.flushPending(c)
}

func (m *Manager) applyMesh(res mesh.Result) {
	c, ok := m.registry.Get(res.Coord)
	if !ok || !c.Ready {
		metrics.StaleResults.Inc()
		return
	}
	c.Mesh = res.Mesh
	c.HasMesh = true
	c.meshPending = false
}

// submitMeshJobs hands dirty ready chunks to the mesh pool, bounded per
// tick. A chunk edited again while its job is in flight stays dirty and is
// resubmitted once the stale mesh lands.
func (m *Manager) submitMeshJobs() {
	submitted := 0
	m.registry.Each(func(c *Chunk) {
		if submitted >= m.opts.MeshSubmits {
			return
		}
		if !c.Ready || !c.MeshDirty || c.meshPending {
			return
		}
		job := mesh.Job{
			Coord:      c.Coord,
			Snapshot:   c.SnapshotBlocks(),
			Width:      c.Width,
			Height:     c.Height,
			ResultChan: m.meshResults,
		}
		if m.meshPool.Submit(job) {
			c.meshPending = true
			c.MeshDirty = false
			submitted++
		}
	})
}

// chunkFor resolves the chunk owning a world position plus the local
// coordinates within it.
func (m *Manager) chunkFor(p vec.Pos) (*Chunk, int, int, int) {
	w := m.params.Width
	coord := vec.ChunkCoord{X: vec.FloorDiv(p.X, w), Z: vec.FloorDiv(p.Z, w)}
	c, ok := m.registry.Get(coord)
	if !ok {
		return nil, 0, 0, 0
	}
	return c, vec.Mod(p.X, w), p.Y, vec.Mod(p.Z, w)
}

// BlockAt returns the block at a world position, Air for unloaded space.
func (m *Manager) BlockAt(p vec.Pos) block.ID {
	c, lx, ly, lz := m.chunkFor(p)
	if c == nil {
		return block.Air
	}
	return c.GetBlock(lx, ly, lz)
}

func (m *Manager) WaterLevelAt(p vec.Pos) Level {
	c, lx, ly, lz := m.chunkFor(p)
	if c == nil {
		return NoWater
	}
	return c.WaterLevel(lx, ly, lz)
}

func (m *Manager) SetWaterLevelAt(p vec.Pos, lv Level) {
	c, lx, ly, lz := m.chunkFor(p)
	if c == nil {
		return
	}
	c.SetWaterLevel(lx, ly, lz, lv)
}

// EditVoxel applies a player edit: writes the block, wakes the water
// simulation around it, and marks the chunk and any boundary-adjacent
// neighbor chunks for remeshing.
func (m *Manager) EditVoxel(p vec.Pos, b block.ID) {
	c, lx, ly, lz := m.chunkFor(p)
	if c == nil {
		// Edits ahead of the streaming radius schedule generation
		// themselves; a cold-cached chunk comes back ready right away.
		m.requestChunk(vec.ChunkCoord{
			X: vec.FloorDiv(p.X, m.params.Width),
			Z: vec.FloorDiv(p.Z, m.params.Width),
		})
		c, lx, ly, lz = m.chunkFor(p)
	}
	if c == nil || !c.Ready {
		// The write lands when the voxels arrive.
		coord := vec.ChunkCoord{
			X: vec.FloorDiv(p.X, m.params.Width),
			Z: vec.FloorDiv(p.Z, m.params.Width),
		}
		m.pending[coord] = append(m.pending[coord], pendingWrite{pos: p, block: b})
		return
	}
	c.SetBlock(lx, ly, lz, b)

	m.water.Enqueue(p)
	for _, np := range p.Neighbors6() {
		m.water.Enqueue(np)
	}

	w := m.params.Width
	if lx == 0 {
		m.dirtyNeighbor(c.Coord.Add(vec.ChunkCoord{X: -1}))
	}
	if lx == w-1 {
		m.dirtyNeighbor(c.Coord.Add(vec.ChunkCoord{X: 1}))
	}
	if lz == 0 {
		m.dirtyNeighbor(c.Coord.Add(vec.ChunkCoord{Z: -1}))
	}
	if lz == w-1 {
		m.dirtyNeighbor(c.Coord.Add(vec.ChunkCoord{Z: 1}))
	}
}

func (m *Manager) dirtyNeighbor(coord vec.ChunkCoord) {
	if n, ok := m.registry.Get(coord); ok && n.Ready {
		n.MeshDirty = true
	}
}

// surfaceAnchor finds the anchor height for a structure in a column:
// the topmost solid block with open air above for surface anchors, or with
// water above for seafloor anchors. Returns -1 when the column offers none.
func (m *Manager) surfaceAnchor(c *Chunk, lx, lz int, anchor AnchorRule) int {
	for y := c.Height - 2; y >= 1; y-- {
		b := c.GetBlock(lx, y, lz)
		if b == block.Air || b == block.Water {
			continue
		}
		abv := c.GetBlock(lx, y+1, lz)
		switch anchor {
		case AnchorSeafloor:
			if abv == block.Water {
				return y
			}
		default:
			if abv == block.Air {
				return y
			}
		}
		return -1
	}
	return -1
}

// populateStructures rolls each configured template against a freshly
// generated chunk. Placement decisions replay identically for the same seed
// and coordinate.
func (m *Manager) populateStructures(c *Chunk) {
	w := m.params.Width
	for si := range m.structures {
		def := &m.structures[si]
		rng := gen.NewRand(m.params.Seed, c.Coord.X, c.Coord.Z, structSalt(def.Name))
		if rng.Float() >= def.Probability {
			continue
		}
		placed := 0
		attempts := def.Attempts
		if attempts <= 0 {
			attempts = 1
		}
		for a := 0; a < attempts && placed < def.MaxPerChunk; a++ {
			lx := rng.IntN(w)
			lz := rng.IntN(w)
			quarter := 0
			if def.Rotate {
				quarter = rng.IntN(4)
			}

			sy := m.surfaceAnchor(c, lx, lz, def.Anchor)
			if sy < 0 || sy < def.MinSurface || sy > def.MaxSurface {
				continue
			}
			if !m.slopeOK(c, lx, lz, sy, def.MaxSlope) {
				continue
			}

			wx := c.Coord.X*w + lx
			wz := c.Coord.Z*w + lz
			bi := gen.DominantBiome(m.params, wx, wz)
			if !def.allowsBiome(m.params.Biomes[bi].Name) {
				continue
			}

			anchor := vec.Pos{X: wx, Y: sy + 1, Z: wz}
			box := templateBounds(def, anchor, quarter)
			if m.reserved(box) {
				continue
			}
			m.reservations = append(m.reservations, box)
			m.stamp(def, anchor, quarter)
			placed++
		}
	}
}

// slopeOK rejects anchors whose in-chunk cardinal neighbors differ in
// surface height by more than maxSlope.
func (m *Manager) slopeOK(c *Chunk, lx, lz, sy, maxSlope int) bool {
	if maxSlope <= 0 {
		return true
	}
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, nz := lx+d[0], lz+d[1]
		if nx < 0 || nx >= c.Width || nz < 0 || nz >= c.Width {
			continue
		}
		ny := m.surfaceAnchor(c, nx, nz, AnchorSurface)
		if ny < 0 {
			continue
		}
		diff := ny - sy
		if diff < 0 {
			diff = -diff
		}
		if diff > maxSlope {
			return false
		}
	}
	return true
}

func (m *Manager) reserved(box reservation) bool {
	for _, r := range m.reservations {
		if r.overlaps(box) {
			return true
		}
	}
	return false
}

// stamp writes a template into the world. Voxels landing in chunks that are
// not ready yet are deferred and flushed when those chunks arrive.
func (m *Manager) stamp(def *StructureDef, anchor vec.Pos, quarter int) {
	w := m.params.Width
	for _, sb := range def.Blocks {
		p := anchor.Add(rotateOffset(sb.Offset, quarter))
		if p.Y < 0 || p.Y >= m.params.Height {
			continue
		}
		coord := vec.ChunkCoord{X: vec.FloorDiv(p.X, w), Z: vec.FloorDiv(p.Z, w)}
		c, ok := m.registry.Get(coord)
		if !ok || !c.Ready {
			m.pending[coord] = append(m.pending[coord], pendingWrite{
				pos:           p,
				block:         sb.Block,
				onlyIntoEmpty: sb.OnlyIntoEmpty,
			})
			continue
		}
		m.writeStructureBlock(c, p, sb.Block, sb.OnlyIntoEmpty)
	}
	log.Printf("world: placed %s at %d,%d,%d", def.Name, anchor.X, anchor.Y, anchor.Z)
}

func (m *Manager) writeStructureBlock(c *Chunk, p vec.Pos, b block.ID, onlyIntoEmpty bool) {
	w := m.params.Width
	lx, lz := vec.Mod(p.X, w), vec.Mod(p.Z, w)
	if onlyIntoEmpty && c.GetBlock(lx, p.Y, lz) != block.Air {
		return
	}
	c.SetBlock(lx, p.Y, lz, b)
}

// flushPending applies deferred structure writes targeting a chunk that
// just became ready.
func (m *Manager) flushPending(c *Chunk) {
	writes, ok := m.pending[c.Coord]
	if !ok {
		return
	}
	delete(m.pending, c.Coord)
	for _, pw := range writes {
		m.writeStructureBlock(c, pw.pos, pw.block, pw.onlyIntoEmpty)
	}
}

func structSalt(name string) int64 {
	var h int64 = 1125899906842597
	for _, r := range name {
		h = h*31 + int64(r)
	}
	return h
}
