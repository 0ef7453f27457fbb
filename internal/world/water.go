package world

import (
	"voxelstream/internal/metrics"
	"voxelstream/internal/vec"
	"voxelstream/internal/world/block"
)

// cellAccess is the world view the water simulation needs: world-space block
// and water-level reads plus level writes. The manager implements it over
// the chunk registry.
type cellAccess interface {
	BlockAt(p vec.Pos) block.ID
	WaterLevelAt(p vec.Pos) Level
	SetWaterLevelAt(p vec.Pos, lv Level)
}

// WaterSim propagates water levels cell by cell. It runs entirely on the
// controlling goroutine: positions are queued, deduplicated, and evaluated
// under a fixed per-tick budget so a large flood never stalls a tick.
type WaterSim struct {
	world          cellAccess
	queue          []vec.Pos
	queued         map[vec.Pos]struct{}
	budget         int
	infiniteSource bool
}

func NewWaterSim(world cellAccess, budget int, infiniteSource bool) *WaterSim {
	if budget <= 0 {
		budget = 64
	}
	return &WaterSim{
		world:          world,
		queued:         make(map[vec.Pos]struct{}),
		budget:         budget,
		infiniteSource: infiniteSource,
	}
}

// Enqueue schedules a cell for re-evaluation. Duplicates are dropped.
func (ws *WaterSim) Enqueue(p vec.Pos) {
	if _, ok := ws.queued[p]; ok {
		return
	}
	ws.queued[p] = struct{}{}
	ws.queue = append(ws.queue, p)
}

func (ws *WaterSim) QueueLen() int { return len(ws.queue) }

// Step evaluates up to the configured budget of queued cells.
func (ws *WaterSim) Step() {
	n := ws.budget
	if n > len(ws.queue) {
		n = len(ws.queue)
	}
	for i := 0; i < n; i++ {
		p := ws.queue[0]
		ws.queue = ws.queue[1:]
		delete(ws.queued, p)
		ws.evaluate(p)
	}
	metrics.WaterQueue.Set(float64(len(ws.queue)))
}

func (ws *WaterSim) evaluate(p vec.Pos) {
	b := ws.world.BlockAt(p)

	// A solid cell cannot hold water.
	if b != block.Air && b != block.Water {
		if ws.world.WaterLevelAt(p) != NoWater {
			ws.world.SetWaterLevelAt(p, NoWater)
			ws.nudgeNeighbors(p)
		}
		return
	}

	cur := ws.world.WaterLevelAt(p)
	if cur == LevelSource {
		// Springs are stable; they feed neighbors but are never recomputed.
		return
	}

	desired := ws.desiredLevel(p)

	if ws.infiniteSource && desired != LevelSource && ws.regeneratesSource(p) {
		desired = LevelSource
	}

	if desired == cur {
		return
	}
	ws.world.SetWaterLevelAt(p, desired)
	if ws.world.WaterLevelAt(p) != desired {
		// Unloaded space swallows the write; do not churn on it.
		return
	}
	ws.Enqueue(p)
	ws.nudgeNeighbors(p)
}

// desiredLevel computes the level this cell should hold given its
// neighbors. Water pouring from above arrives at full strength; standing
// horizontal neighbors feed at their level plus one. A neighbor that can
// itself escape downward feeds only the cell below it, never sideways,
// which keeps falling streams one cell wide.
func (ws *WaterSim) desiredLevel(p vec.Pos) Level {
	desired := NoWater

	above := p.Add(vec.Pos{Y: 1})
	if ws.world.WaterLevelAt(above) != NoWater {
		desired = 1
	}

	for _, n := range horizontalOffsets {
		np := p.Add(n)
		ln := ws.world.WaterLevelAt(np)
		if ln == NoWater || ws.flowableDown(np) {
			continue
		}
		if ln >= MaxLevel {
			continue // too weak to spread further
		}
		contrib := ln + 1
		if contrib < desired {
			desired = contrib
		}
	}

	// A fed cell that can still escape downward holds falling water.
	if desired != NoWater && ws.flowableDown(p) {
		desired = 1
	}

	return desired
}

// flowableDown reports whether water at p can escape into the cell below:
// the cell below is empty, or holds weaker water.
func (ws *WaterSim) flowableDown(p vec.Pos) bool {
	below := p.Add(vec.Pos{Y: -1})
	bb := ws.world.BlockAt(below)
	if bb == block.Air {
		return true
	}
	if bb == block.Water {
		lv := ws.world.WaterLevelAt(below)
		return lv != LevelSource && lv > 1
	}
	return false
}

// regeneratesSource implements the infinite-source rule: a cell flanked by
// at least two horizontal springs under a blocked top refills as a spring.
func (ws *WaterSim) regeneratesSource(p vec.Pos) bool {
	above := p.Add(vec.Pos{Y: 1})
	if ws.world.BlockAt(above) == block.Air {
		return false
	}
	sources := 0
	for _, n := range horizontalOffsets {
		if ws.world.WaterLevelAt(p.Add(n)) == LevelSource {
			sources++
		}
	}
	return sources >= 2
}

func (ws *WaterSim) nudgeNeighbors(p vec.Pos) {
	for _, np := range p.Neighbors6() {
		ws.Enqueue(np)
	}
}

var horizontalOffsets = [4]vec.Pos{
	{X: 1}, {X: -1}, {Z: 1}, {Z: -1},
}
