// SPDX-License-Identifier: MIT

package uvatlas

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/uvatlas/chart"
	"github.com/katalvlaran/uvatlas/halfedge"
	"github.com/katalvlaran/uvatlas/pack"
	"github.com/katalvlaran/uvatlas/param"
	"github.com/katalvlaran/uvatlas/segment"
)

// Atlas owns the meshes added to it and every chart built from them.
// An Atlas is not safe for concurrent use; separate atlases share nothing.
type Atlas struct {
	logger *slog.Logger
	seed   int64

	meshes []*halfedge.Mesh
	charts []*meshCharts

	quality    param.Quality
	chartCount int
	charted    bool

	width, height int
	utilization   float64
	outputs       []OutputMesh
}

// meshCharts is the chart set of one mesh. The vertex-map chart, if any,
// comes first.
type meshCharts struct {
	charts    []*chart.Chart
	valid     []bool
	faceChart []int // chart of every face
	faceIndex []int // position of the face in its chart
	offset    []int // first output vertex of every chart
	vertices  int
}

func newMeshCharts(faceCount int) *meshCharts {
	mc := &meshCharts{faceChart: make([]int, faceCount), faceIndex: make([]int, faceCount)}
	for f := range mc.faceChart {
		mc.faceChart[f] = -1
	}
	return mc
}

func (mc *meshCharts) add(c *chart.Chart) {
	id := len(mc.charts)
	mc.charts = append(mc.charts, c)
	mc.valid = append(mc.valid, false)
	mc.offset = append(mc.offset, mc.vertices)
	mc.vertices += c.VertexCount()
	for k, f := range c.Faces() {
		mc.faceChart[f] = id
		mc.faceIndex[f] = k
	}
}

// New returns an empty atlas.
func New(opts ...Option) *Atlas {
	a := &Atlas{logger: discardLogger(), seed: defaultRNGSeed}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// reset drops charts and outputs.
func (a *Atlas) reset() {
	a.charts = nil
	a.quality = param.Quality{}
	a.chartCount = 0
	a.charted = false
	a.resetOutputs()
}

func (a *Atlas) resetOutputs() {
	a.width, a.height = 0, 0
	a.utilization = 0
	a.outputs = nil
}

// GenerateCharts segments every mesh into charts and parameterizes them.
// Earlier charts and outputs are discarded. The result depends only on the
// meshes, opts and the atlas seed.
//
// Stage 1: per mesh, faces flagged FaceIgnore go to a vertex-map chart and
// the rest are segmented with the mesh's own random stream.
// Stage 2: every chart is parameterized; quality is summed over charts
// with a valid strategy, and non-disk charts keep their projection but are
// marked invalid.
//
// Errors: ErrNoMeshes, ErrInvalidOptions.
func (a *Atlas) GenerateCharts(opts ChartOptions, fn ProgressFunc) error {
	if len(a.meshes) == 0 {
		return fmt.Errorf("GenerateCharts: %w", ErrNoMeshes)
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("GenerateCharts: %w: %w", ErrInvalidOptions, err)
	}
	a.reset()

	// Stage 1
	p := startProgress(fn, ComputingCharts)
	charts := make([]*meshCharts, 0, len(a.meshes))
	for i, m := range a.meshes {
		mc, err := a.computeCharts(i, m, opts)
		if err != nil {
			return fmt.Errorf("GenerateCharts: mesh %d: %w", i, err)
		}
		charts = append(charts, mc)
		p.step(i+1, len(a.meshes))
	}
	p.finish()
	a.charts = charts

	// Stage 2
	a.parameterize(fn)
	a.charted = true
	a.logger.Debug("charts generated",
		"charts", a.chartCount,
		"flipped", a.quality.FlippedTriangles,
		"rmsStretch", a.quality.RMSStretch(),
		"maxStretch", a.quality.MaxStretch())
	return nil
}

func (a *Atlas) computeCharts(id int, m *halfedge.Mesh, opts ChartOptions) (*meshCharts, error) {
	var ignored []halfedge.FaceID
	for f := 0; f < m.FaceCount(); f++ {
		if m.Face(halfedge.FaceID(f)).Ignored() {
			ignored = append(ignored, halfedge.FaceID(f))
		}
	}
	b, err := segment.NewBuilder(m, opts, streamRNG(a.seed, segmentStream+uint64(id)), a.logger)
	if err != nil {
		return nil, err
	}
	if err := b.MarkUnchartedFaces(ignored); err != nil {
		return nil, err
	}
	b.Run()

	// Faces the builder could not reach join the vertex map.
	for f := 0; f < m.FaceCount(); f++ {
		if b.FaceChart(halfedge.FaceID(f)) == segment.Unassigned {
			a.logger.Warn("face left out of charts", "mesh", id, "face", f)
			ignored = append(ignored, halfedge.FaceID(f))
		}
	}

	mc := newMeshCharts(m.FaceCount())
	if len(ignored) > 0 {
		c, err := chart.BuildVertexMap(m, ignored, chart.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		mc.add(c)
	}
	for i := 0; i < b.ChartCount(); i++ {
		c, err := chart.Build(m, b.ChartFaces(i), chart.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		mc.add(c)
	}
	a.logger.Debug("mesh segmented", "mesh", id, "charts", b.ChartCount(), "ignored", len(ignored))
	return mc, nil
}

func (a *Atlas) parameterize(fn ProgressFunc) {
	total := 0
	for _, mc := range a.charts {
		total += len(mc.charts)
	}
	p := startProgress(fn, ParameterizingCharts)
	done := 0
	for mi, mc := range a.charts {
		for ci, c := range mc.charts {
			done++
			if c.IsVertexMapped() {
				c.SaveUVs()
				p.step(done, total)
				continue
			}
			a.chartCount++
			s := param.Classify(c.FaceCount(), c.IsDisk(), c.IsVertexMapped())
			q, err := param.Parameterize(c.UnifiedMesh(), s, param.WithLogger(a.logger))
			switch {
			case err == nil:
				a.quality.Add(q)
				mc.valid[ci] = q.IsValid()
			case errors.Is(err, param.ErrNotDisk):
				a.logger.Debug("chart is not a disk", "mesh", mi, "chart", ci, "faces", c.FaceCount())
			default:
				a.logger.Warn("chart not parameterized", "mesh", mi, "chart", ci, "err", err)
			}
			c.TransferParameterization()
			c.SaveUVs()
			p.step(done, total)
		}
	}
	p.finish()
}

// PackCharts lays the charts out in one atlas and builds the output meshes.
// It may be called again with other options; every call starts from the
// parameterization of GenerateCharts.
//
// Errors: ErrNotCharted, ErrInvalidOptions.
func (a *Atlas) PackCharts(opts PackOptions, fn ProgressFunc) error {
	if !a.charted {
		return fmt.Errorf("PackCharts: %w", ErrNotCharted)
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("PackCharts: %w: %w", ErrInvalidOptions, err)
	}
	a.resetOutputs()

	var all []*chart.Chart
	for _, mc := range a.charts {
		all = append(all, mc.charts...)
	}
	p := startProgress(fn, PackingCharts)
	packer := pack.New(pack.WithRand(streamRNG(a.seed, packStream)), pack.WithLogger(a.logger))
	res, err := packer.Pack(all, opts)
	if err != nil {
		return fmt.Errorf("PackCharts: %w", err)
	}
	p.finish()
	a.width, a.height = res.Width, res.Height
	a.utilization = res.Utilization
	a.logger.Debug("charts packed",
		"width", res.Width, "height", res.Height,
		"utilization", res.Utilization, "iterations", res.Iterations)

	p = startProgress(fn, BuildingOutputMeshes)
	a.outputs = make([]OutputMesh, len(a.charts))
	for i, mc := range a.charts {
		a.outputs[i] = buildOutput(a.meshes[i], mc)
		p.step(i+1, len(a.charts))
	}
	p.finish()
	return nil
}

// Width returns the atlas width in texels after PackCharts.
func (a *Atlas) Width() int { return a.width }

// Height returns the atlas height in texels after PackCharts.
func (a *Atlas) Height() int { return a.height }

// Utilization returns the fraction of atlas texels covered by charts.
func (a *Atlas) Utilization() float64 { return a.utilization }

// ChartCount returns the number of charted groups over all meshes. Ignored
// faces are not counted.
func (a *Atlas) ChartCount() int { return a.chartCount }

// Quality returns the parameterization quality summed over all disk charts.
func (a *Atlas) Quality() param.Quality { return a.quality }

// MeshCount returns the number of meshes added.
func (a *Atlas) MeshCount() int { return len(a.meshes) }

// Meshes returns one output mesh per input mesh after PackCharts, in the
// order they were added. The slice is owned by the atlas.
func (a *Atlas) Meshes() []OutputMesh { return a.outputs }
