// SPDX-License-Identifier: MIT

package pack

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/chart"
	"github.com/katalvlaran/uvatlas/geom"
	"github.com/katalvlaran/uvatlas/halfedge"
	"github.com/katalvlaran/uvatlas/raster"
)

// Option configures New.
type Option func(*Packer)

// WithRand sets the random source of placement trials. A nil source is
// ignored.
func WithRand(r *rand.Rand) Option {
	return func(p *Packer) {
		if r != nil {
			p.rng = r
		}
	}
}

// WithLogger routes per-pass diagnostics to l. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(p *Packer) {
		if l != nil {
			p.logger = l
		}
	}
}

// Packer owns the canvas of one Pack call. It is not safe for concurrent
// use.
type Packer struct {
	rng    *rand.Rand
	logger *slog.Logger

	canvas *raster.Bitmap
	w, h   int
}

// New returns a Packer seeded with 1 unless WithRand is given.
func New(opts ...Option) *Packer {
	p := &Packer{
		rng:    rand.New(rand.NewSource(1)),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Placement records where one chart went.
type Placement struct {
	Chart         int // index into the charts given to Pack
	X, Y          int // bitmap origin in the atlas, in texels
	Width, Height int // bitmap size after rotation
	Rotated       bool
	Texels        int // occupied texels, margin included
}

// Result describes a packed atlas.
type Result struct {
	Width, Height int
	Utilization   float64 // occupied fraction of Width·Height
	UsedTexels    int
	Iterations    int
	TexelsPerUnit float64
	Placements    []Placement
}

// Packable reports whether Pack places c. Vertex-mapped charts keep their
// (0,0) UVs and take no space.
func Packable(c *chart.Chart) bool { return !c.IsVertexMapped() }

// Pack rewinds every chart to its saved UVs, then writes atlas UVs, in
// texels, into the chart meshes.
//
// Implementation:
//   - Stage 1: ApproximateResolution and ExactResolution spend a first pass
//     estimating texels per unit from the total surface area.
//   - Stage 2: every packable chart is fitted to its oriented box, scaled
//     and snapped.
//   - Stage 3: charts are rasterized and placed, largest perimeter first.
//   - Stage 4: ExactResolution rescales and repeats until two passes after
//     the estimate the atlas fits, or MaxExactIterations passes ran; the
//     last layout is kept either way.
//
// Errors: ErrInvalidOptions, ErrNilChart.
func (p *Packer) Pack(charts []*chart.Chart, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, fmt.Errorf("Pack: %w", err)
	}
	for i, c := range charts {
		if c == nil {
			return Result{}, fmt.Errorf("Pack: chart %d: %w", i, ErrNilChart)
		}
	}
	for _, c := range charts {
		c.RestoreUVs()
	}

	var res Result
	if len(charts) == 0 {
		return res, nil
	}
	texelsPerUnit := 1.0
	if opts.Method == TexelArea {
		texelsPerUnit = opts.TexelArea
	}

	for iteration := 0; ; iteration++ {
		res.Iterations = iteration + 1

		if opts.Method != TexelArea && iteration == 0 {
			var area float64
			for _, c := range charts {
				if Packable(c) {
					area += c.SurfaceArea()
				}
			}
			texelCount := math.Max(1, area*texelsPerUnit*texelsPerUnit/TargetUtilization)
			texelsPerUnit = float64(opts.Resolution) / math.Sqrt(texelCount)
			p.logger.Debug("estimated texel density", "texelsPerUnit", texelsPerUnit, "area", area)
			continue
		}

		res.TexelsPerUnit = texelsPerUnit
		res.Placements = p.layout(charts, texelsPerUnit, opts)
		p.logger.Debug("pack pass", "iteration", iteration, "texelsPerUnit", texelsPerUnit,
			"width", p.w, "height", p.h)

		if opts.Method != ExactResolution {
			break
		}
		if iteration > 1 && p.w <= opts.Resolution && p.h <= opts.Resolution {
			p.w, p.h = opts.Resolution, opts.Resolution
			break
		}
		if res.Iterations >= MaxExactIterations {
			// The last layout stands, not the closest one to Resolution.
			p.logger.Debug("exact resolution not reached", "width", p.w, "height", p.h)
			break
		}
		if largest := max(p.w, p.h); largest > 0 {
			texelsPerUnit *= float64(opts.Resolution) / float64(largest)
		}
		if iteration >= RelaxationIteration {
			texelsPerUnit *= 1 - 0.1*float64(iteration-RelaxationIteration+1)
		}
		for _, c := range charts {
			c.RestoreUVs()
		}
	}

	res.Width, res.Height = p.w, p.h
	if p.canvas != nil {
		res.UsedTexels = p.canvas.CountRect(p.w, p.h)
	}
	if p.w*p.h > 0 {
		res.Utilization = float64(res.UsedTexels) / float64(p.w*p.h)
	}
	return res, nil
}

// layout runs one fit, rasterize and place pass.
func (p *Packer) layout(charts []*chart.Chart, texelsPerUnit float64, opts Options) []Placement {
	p.canvas = raster.NewBitmap(opts.Resolution, opts.Resolution)
	p.w, p.h = 0, 0

	var order []int
	extents := make([]r2.Vec, len(charts))
	for i, c := range charts {
		if !Packable(c) {
			continue
		}
		extents[i] = p.fit(c, texelsPerUnit, opts)
		order = append(order, i)
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(extents[b].X+extents[b].Y, extents[a].X+extents[a].Y)
	})

	placements := make([]Placement, 0, len(order))
	for _, i := range order {
		c := charts[i]
		bm := rasterize(c, extents[i], opts)
		cells := setCells(bm)
		loc := p.findLocation(cells, bm.Width(), bm.Height(), opts, c.BlockAligned)

		p.w = geom.Align(max(p.w, loc.x+loc.w), BlockSize)
		p.h = geom.Align(max(p.h, loc.y+loc.h), BlockSize)
		if p.w > p.canvas.Width() || p.h > p.canvas.Height() {
			p.canvas.Resize(
				geom.NextPowerOfTwo(max(p.w, p.canvas.Width())),
				geom.NextPowerOfTwo(max(p.h, p.canvas.Height())),
				false)
		}
		p.addChart(cells, loc)

		off := 0.5 + float64(padding(opts))
		m := c.ChartMesh()
		for v := 0; v < m.VertexCount(); v++ {
			vx := m.Vertex(halfedge.VertexID(v))
			t := vx.Tex
			if loc.rotated {
				t.X, t.Y = t.Y, t.X
			}
			vx.Tex = r2.Vec{X: float64(loc.x) + t.X + off, Y: float64(loc.y) + t.Y + off}
		}
		placements = append(placements, Placement{
			Chart: i, X: loc.x, Y: loc.y, Width: loc.w, Height: loc.h,
			Rotated: loc.rotated, Texels: len(cells),
		})
	}
	return placements
}

func padding(opts Options) int {
	if opts.Conservative {
		return opts.Padding
	}
	return 0
}

// fit moves c's UVs into its oriented box frame, scaled to texels and
// snapped to whole texels, and returns the snapped extents.
func (p *Packer) fit(c *chart.Chart, texelsPerUnit float64, opts Options) r2.Vec {
	m := c.ChartMesh()
	if !c.IsFinite() {
		p.logger.Warn("chart has non-finite UVs; packing it as a point")
		for v := 0; v < m.VertexCount(); v++ {
			m.Vertex(halfedge.VertexID(v)).Tex = r2.Vec{}
		}
	}

	area := c.SurfaceArea()
	paramArea := math.Abs(c.ParametricArea())
	if paramArea < geom.Epsilon {
		b := c.ParametricBounds()
		paramArea = b.X * b.Y
	}
	var scale float64
	if paramArea > 0 {
		scale = area / paramArea * texelsPerUnit
	}

	uvs := make([]r2.Vec, m.VertexCount())
	for v := range uvs {
		uvs[v] = m.Vertex(halfedge.VertexID(v)).Tex
	}
	box := OrientedBox(ConvexHull(c.BoundaryPoints(), HullEpsilon), uvs)

	var ext r2.Vec
	for v, uv := range uvs {
		t := r2.Scale(scale, box.Local(uv))
		t = r2.Vec{X: math.Max(t.X, 0), Y: math.Max(t.Y, 0)}
		uvs[v] = t
		ext = geom.Max2(ext, t)
	}
	if limit := math.Max(ext.X, ext.Y); limit > MaxChartExtent {
		s := MaxChartExtent / (limit + 1)
		for v := range uvs {
			uvs[v] = r2.Scale(s, uvs[v])
		}
		ext = r2.Scale(s, ext)
	}

	block := opts.BlockAlign && c.BlockAligned
	sx, snappedX := snap(ext.X, block, padding(opts))
	sy, snappedY := snap(ext.Y, block, padding(opts))
	for v, t := range uvs {
		m.Vertex(halfedge.VertexID(v)).Tex = r2.Vec{X: t.X * sx, Y: t.Y * sy}
	}
	return r2.Vec{X: snappedX, Y: snappedY}
}

// snap rounds extent e up to whole texels and returns the UV factor that
// stretches the chart to just inside the new extent. Block-aligned extents
// make the padded bitmap a multiple of BlockSize wide.
func snap(e float64, block bool, pad int) (factor, snapped float64) {
	if e <= 0 {
		return 1, e
	}
	n := int(math.Ceil(e))
	if block {
		n = geom.Align(n+1+2*pad, BlockSize) - 1 - 2*pad
	}
	return (float64(n) - geom.Epsilon) / e, float64(n)
}

// jitter offsets the four default rasterization passes by half a texel.
var jitter = [4]r2.Vec{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: -0.5, Y: 0.5}, {X: 0.5, Y: 0.5}}

// rasterize draws c's fitted UVs into a bitmap one texel larger than its
// extents, plus the conservative padding on both sides, and dilates it.
func rasterize(c *chart.Chart, ext r2.Vec, opts Options) *raster.Bitmap {
	pad := padding(opts)
	w := int(math.Ceil(ext.X)) + 1 + 2*pad
	h := int(math.Ceil(ext.Y)) + 1 + 2*pad
	bm := raster.NewBitmap(w, h)
	size := r2.Vec{X: float64(w), Y: float64(h)}
	set := func(x, y int, _, _, _ r3.Vec, coverage float64) bool {
		if coverage > 0 {
			bm.SetBit(x, y)
		}
		return true
	}

	off := 0.5 + float64(pad)
	if opts.Conservative {
		drawChart(c.ChartMesh(), r2.Vec{X: off, Y: off}, size, set)
		bm.Dilate(pad)
		return bm
	}
	for _, j := range jitter {
		drawChart(c.ChartMesh(), r2.Add(r2.Vec{X: off, Y: off}, j), size, set)
	}
	bm.Dilate(1)
	return bm
}

func drawChart(m *halfedge.Mesh, offset, size r2.Vec, fn raster.SampleFunc) {
	for f := 0; f < m.FaceCount(); f++ {
		vs := m.FaceVertices(halfedge.FaceID(f))
		for i := 1; i+1 < len(vs); i++ {
			tri := [3]r2.Vec{
				r2.Add(m.Vertex(vs[0]).Tex, offset),
				r2.Add(m.Vertex(vs[i]).Tex, offset),
				r2.Add(m.Vertex(vs[i+1]).Tex, offset),
			}
			raster.DrawTriangle(raster.ModeAntialiased, size, true, tri, fn)
		}
	}
}

type cell struct{ x, y int }

func setCells(bm *raster.Bitmap) []cell {
	cells := make([]cell, 0, bm.Count())
	bm.ForEach(func(x, y int) bool {
		cells = append(cells, cell{x, y})
		return true
	})
	return cells
}

// location is a candidate placement; w and h are the rotated bitmap size.
type location struct {
	x, y, w, h int
	rotated    bool
	metric     int
	found      bool
}

// better reports whether a candidate with metric and origin (x, y) beats l:
// a lower metric, or an equal one closer to the origin.
func (l location) better(metric, x, y int) bool {
	if !l.found || metric < l.metric {
		return true
	}
	return metric == l.metric && max(x, y) < max(l.x, l.y)
}

// score returns extents² + area of the canvas after placing a cw×ch bitmap
// at (x, y).
func (p *Packer) score(x, y, cw, ch int) (metric, area int) {
	w, h := max(p.w, x+cw), max(p.h, y+ch)
	e := max(w, h)
	return e*e + w*h, w * h
}

func (p *Packer) findLocation(cells []cell, cw, ch int, opts Options, blockAligned bool) location {
	attempts := opts.attempts()
	if opts.Quality == 0 || p.w*p.h < attempts {
		return p.bruteForce(cells, cw, ch, blockAligned)
	}
	if loc := p.randomSearch(cells, cw, ch, attempts, blockAligned); loc.found {
		return loc
	}
	return p.bruteForce(cells, cw, ch, blockAligned)
}

// bruteForce scans every aligned position up to one past the canvas. A
// position past the canvas always fits, so it never fails.
func (p *Packer) bruteForce(cells []cell, cw, ch int, blockAligned bool) location {
	step := 1
	if blockAligned {
		step = BlockSize
	}
	var best location
	for r := 0; r < 2; r++ {
		rotated := r == 1
		w, h := cw, ch
		if rotated {
			w, h = ch, cw
		}
		for y := 0; y <= p.h+1; y += step {
			for x := 0; x <= p.w+1; x += step {
				metric, area := p.score(x, y, w, h)
				if !best.better(metric, x, y) || !p.canAdd(cells, x, y, rotated) {
					continue
				}
				best = location{x: x, y: y, w: w, h: h, rotated: rotated, metric: metric, found: true}
				if area == p.w*p.h {
					return best
				}
			}
		}
	}
	return best
}

// randomSearch samples attempts positions, continuing up to four times as
// long while nothing fits.
func (p *Packer) randomSearch(cells []cell, cw, ch, attempts int, blockAligned bool) location {
	var best location
	for i := 0; i < attempts || (!best.found && i < 4*attempts); i++ {
		rotated := p.rng.Intn(2) == 1
		x := p.rng.Intn(p.w + 2)
		y := p.rng.Intn(p.h + 2)
		if blockAligned {
			x, y = geom.Align(x, BlockSize), geom.Align(y, BlockSize)
		}
		w, h := cw, ch
		if rotated {
			w, h = ch, cw
		}
		metric, area := p.score(x, y, w, h)
		if !best.better(metric, x, y) || !p.canAdd(cells, x, y, rotated) {
			continue
		}
		best = location{x: x, y: y, w: w, h: h, rotated: rotated, metric: metric, found: true}
		if area == p.w*p.h {
			break
		}
	}
	return best
}

func (l location) target(c cell, rotated bool) (int, int) {
	if rotated {
		return l.x + c.y, l.y + c.x
	}
	return l.x + c.x, l.y + c.y
}

// canAdd reports whether no set cell lands on an occupied canvas texel
// inside the current atlas rectangle.
func (p *Packer) canAdd(cells []cell, x, y int, rotated bool) bool {
	at := location{x: x, y: y}
	for _, c := range cells {
		xx, yy := at.target(c, rotated)
		if xx < p.w && yy < p.h && p.canvas.Bit(xx, yy) {
			return false
		}
	}
	return true
}

func (p *Packer) addChart(cells []cell, loc location) {
	for _, c := range cells {
		xx, yy := loc.target(c, loc.rotated)
		if xx < p.w && yy < p.h {
			p.canvas.SetBit(xx, yy)
		}
	}
}
