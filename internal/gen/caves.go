package gen

import "math"

// carver evaluates the volumetric cave and ravine fields. Worm tunnels are
// handled separately (worms.go) because they rasterize into a mask up front.
type carver struct {
	p  *Params
	ns *noiseSet
}

func newCarver(p *Params, ns *noiseSet) *carver {
	return &carver{p: p, ns: ns}
}

// gauss is an unnormalized Gaussian bump centered at c.
func gauss(v, c, sigma float64) float64 {
	if sigma <= 0 {
		return 0
	}
	d := (v - c) / sigma
	return math.Exp(-0.5 * d * d)
}

// bandWeight favors two target cavern depths. Each band center drifts across
// the world under slow 2D noise, so the favored depth varies by region.
func (c *carver) bandWeight(x, z int, depth float64) float64 {
	cp := &c.p.Caves

	d1, d2 := 0.0, 0.0
	if cp.DriftFreq > 0 && cp.BandDrift > 0 {
		fx, fz := float64(x)*cp.DriftFreq, float64(z)*cp.DriftFreq
		d1 = (c.ns.bandDrift.fractal2(fx, fz, 2, 0.5, 2.0) - 0.5) * 2 * cp.BandDrift
		d2 = (c.ns.bandDrift.fractal2(fx+811.7, fz+223.9, 2, 0.5, 2.0) - 0.5) * 2 * cp.BandDrift
	}

	w := gauss(depth, cp.BandCenter1+d1, cp.BandSigma) +
		gauss(depth, cp.BandCenter2+d2, cp.BandSigma)
	return math.Min(w, 1)
}

// isCave reports whether the volumetric field carves the voxel. depth is the
// voxel's y normalized to world height.
func (c *carver) isCave(x, y, z int) bool {
	cp := &c.p.Caves
	if cp.Frequency <= 0 {
		return false
	}
	depth := float64(y) / float64(c.p.Height)

	// Sparse 2D gate breaks large-scale connectivity; relaxed at depth.
	if cp.GateFreq > 0 {
		thr := cp.GateThreshold
		if cp.DepthBoostTop > 0 && depth < cp.DepthBoostTop {
			thr -= cp.DepthBoost * (1 - depth/cp.DepthBoostTop)
		}
		g := c.ns.caveGate.fractal2(float64(x)*cp.GateFreq, float64(z)*cp.GateFreq, 2, 0.5, 2.0)
		if g < thr {
			return false
		}
	}

	band := c.bandWeight(x, z, depth)
	if band <= 0 {
		return false
	}

	f := cp.Frequency
	n := c.ns.cave.fractal3(float64(x)*f, float64(y)*f*1.6, float64(z)*f, 3, 0.5, 2.0)
	return n*band > cp.Threshold
}

// isRavine reports whether the ridged ravine field carves the voxel. Ravines
// live in a depth window below the surface; overshoot past the threshold
// widens the window so stronger ridges cut deeper.
func (c *carver) isRavine(x, y, z, surface int) bool {
	cp := &c.p.Caves
	if cp.RavineFreq <= 0 || cp.RavineThreshold >= 1 || cp.RavineMaxDepth <= cp.RavineMinDepth {
		return false
	}

	rv := c.ns.ravine.ridged2(float64(x)*cp.RavineFreq, float64(z)*cp.RavineFreq, 2, 0.5, 2.0)
	if rv <= cp.RavineThreshold {
		return false
	}
	strength := (rv - cp.RavineThreshold) / (1 - cp.RavineThreshold)

	top := surface - cp.RavineMinDepth
	bottom := surface - cp.RavineMinDepth - int(strength*float64(cp.RavineMaxDepth-cp.RavineMinDepth))
	if y > top || y < bottom {
		return false
	}

	depth := float64(y) / float64(c.p.Height)
	return c.bandWeight(x, z, depth) > 0.1
}
