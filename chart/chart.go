// SPDX-License-Identifier: MIT

package chart

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/geom"
	"github.com/katalvlaran/uvatlas/halfedge"
	"github.com/katalvlaran/uvatlas/topology"
)

// MaxSplitPasses bounds the T-junction repair loop of Build.
const MaxSplitPasses = 8

// Option configures Build.
type Option func(*config)

type config struct {
	logger *slog.Logger
	eps    float64
}

// WithLogger routes hole closing and face linking diagnostics to l.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEpsilon sets the tolerance used for T-junction detection and the
// planarity test of holes. Non-positive values are ignored.
func WithEpsilon(eps float64) Option {
	return func(c *config) {
		if eps > 0 {
			c.eps = eps
		}
	}
}

func gatherOptions(opts []Option) config {
	c := config{logger: slog.New(slog.NewTextHandler(io.Discard, nil)), eps: geom.Epsilon}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Chart is one connected group of faces with its own meshes.
//
// Scale multiplies the reported surface area; BlockAligned asks the packer
// to place the chart on 4-texel boundaries.
type Chart struct {
	Scale        float64
	BlockAligned bool

	faces []halfedge.FaceID

	chartMesh   *halfedge.Mesh
	unifiedMesh *halfedge.Mesh

	chartToOriginal []halfedge.VertexID
	chartToUnified  []halfedge.VertexID

	isDisk         bool
	isVertexMapped bool

	savedUVs []r2.Vec
	logger   *slog.Logger
}

func newChart(faces []halfedge.FaceID, cfg config) *Chart {
	return &Chart{
		Scale:        1,
		BlockAligned: true,
		faces:        append([]halfedge.FaceID(nil), faces...),
		logger:       cfg.logger,
	}
}

func checkFaces(method string, original *halfedge.Mesh, faces []halfedge.FaceID) error {
	if len(faces) == 0 {
		return fmt.Errorf("%s: %w", method, ErrNoFaces)
	}
	for _, f := range faces {
		if f < 0 || int(f) >= original.FaceCount() {
			return fmt.Errorf("%s: face %d of %d: %w", method, f, original.FaceCount(), ErrFaceOutOfRange)
		}
	}
	return nil
}

// Build extracts faces of original into a new chart.
//
// Implementation:
//   - Stage 1: copy vertices. Chart vertices are keyed by original vertex,
//     unified vertices by the first vertex of the original colocal ring.
//   - Stage 2: copy faces into both meshes and link their boundaries.
//     Faces that cannot be linked are stored detached.
//   - Stage 3: split boundary edges at T-junctions, re-unifying after each
//     pass that split something.
//   - Stage 4: close holes, triangulate and classify the topology.
//
// Errors: ErrNoFaces, ErrFaceOutOfRange.
//
// Complexity: see the package documentation.
func Build(original *halfedge.Mesh, faces []halfedge.FaceID, opts ...Option) (*Chart, error) {
	if err := checkFaces("Build", original, faces); err != nil {
		return nil, err
	}
	cfg := gatherOptions(opts)
	c := newChart(faces, cfg)
	meshOpts := []halfedge.Option{halfedge.WithLogger(cfg.logger), halfedge.WithEpsilon(cfg.eps)}
	c.chartMesh = halfedge.New(meshOpts...)
	unified := halfedge.New(meshOpts...)

	// Stage 1
	n := original.VertexCount()
	chartIndex := make([]halfedge.VertexID, n)
	unifiedIndex := make([]halfedge.VertexID, n)
	for i := range chartIndex {
		chartIndex[i] = halfedge.NilVertex
		unifiedIndex[i] = halfedge.NilVertex
	}
	for _, f := range faces {
		for _, v := range original.FaceVertices(f) {
			src := original.Vertex(v)
			first := original.FirstColocal(v)
			if unifiedIndex[first] == halfedge.NilVertex {
				unifiedIndex[first] = unified.AddVertex(src.Pos)
			}
			if chartIndex[v] == halfedge.NilVertex {
				cv := c.chartMesh.AddVertex(src.Pos)
				dst := c.chartMesh.Vertex(cv)
				dst.Nor = src.Nor
				dst.Tex = src.Tex
				chartIndex[v] = cv
				c.chartToOriginal = append(c.chartToOriginal, v)
				c.chartToUnified = append(c.chartToUnified, unifiedIndex[first])
			}
		}
	}
	c.chartMesh.LinkColocals()

	// Stage 2
	var chartCorners, unifiedCorners []halfedge.VertexID
	for _, f := range faces {
		chartCorners, unifiedCorners = chartCorners[:0], unifiedCorners[:0]
		for _, v := range original.FaceVertices(f) {
			chartCorners = append(chartCorners, chartIndex[v])
			unifiedCorners = append(unifiedCorners, unifiedIndex[original.FirstColocal(v)])
		}
		flags := original.Face(f).Flags
		addOrDetach(c.chartMesh, chartCorners, flags)
		addOrDetach(unified, unifiedCorners, flags)
	}
	c.chartMesh.LinkBoundary()
	unified.LinkBoundary()

	// Stage 3
	for pass := 0; pass < MaxSplitPasses && unified.SplitBoundaryEdges(); pass++ {
		unified = unified.Unify()
	}

	// Stage 4
	c.unifiedMesh = unified
	if !c.closeHoles(cfg.eps) {
		c.logger.Debug("holes left open", "faces", len(faces))
	}
	c.unifiedMesh = c.unifiedMesh.Triangulate()
	c.isDisk = topology.Analyze(c.unifiedMesh).IsDisk()
	return c, nil
}

// BuildVertexMap collects faces that are excluded from charting. The chart
// mesh holds their vertices with UV (0,0); no unified mesh is built.
//
// Errors: ErrNoFaces, ErrFaceOutOfRange.
func BuildVertexMap(original *halfedge.Mesh, faces []halfedge.FaceID, opts ...Option) (*Chart, error) {
	if err := checkFaces("BuildVertexMap", original, faces); err != nil {
		return nil, err
	}
	cfg := gatherOptions(opts)
	c := newChart(faces, cfg)
	c.isVertexMapped = true
	c.chartMesh = halfedge.New(halfedge.WithLogger(cfg.logger), halfedge.WithEpsilon(cfg.eps))

	chartIndex := make(map[halfedge.VertexID]halfedge.VertexID)
	var corners []halfedge.VertexID
	for _, f := range faces {
		corners = corners[:0]
		for _, v := range original.FaceVertices(f) {
			cv, ok := chartIndex[v]
			if !ok {
				src := original.Vertex(v)
				cv = c.chartMesh.AddVertex(src.Pos)
				c.chartMesh.Vertex(cv).Nor = src.Nor
				chartIndex[v] = cv
				c.chartToOriginal = append(c.chartToOriginal, v)
			}
			corners = append(corners, cv)
		}
		c.chartMesh.AddDetachedFace(corners, original.Face(f).Flags)
	}
	return c, nil
}

func addOrDetach(m *halfedge.Mesh, corners []halfedge.VertexID, flags halfedge.FaceFlags) {
	if _, err := m.AddFace(corners, flags); err != nil {
		m.Logger().Warn("chart face stored detached", "corners", len(corners), "err", err)
		m.AddDetachedFace(corners, flags)
	}
}

//----------------------------------------------------------------------------//
// Hole closing
//----------------------------------------------------------------------------//

// closeHoles closes every boundary loop of the unified mesh except the
// longest. A loop that touches itself at a colocal vertex is split there
// and the inner part closed first. It reports whether one loop remains.
func (c *Chart) closeHoles(eps float64) bool {
	m := c.unifiedMesh
	loops := m.BoundaryLoops()
	if len(loops) <= 1 {
		return true
	}

	disk, longest := 0, -1.0
	for i, start := range loops {
		length := 0.0
		for _, e := range m.LoopEdges(start) {
			length += r3.Norm(r3.Sub(m.Vertex(m.To(e)).Pos, m.Vertex(m.From(e)).Pos))
		}
		if length > longest {
			disk, longest = i, length
		}
	}

	for i, start := range loops {
		if i == disk {
			continue
		}
		var (
			vertexLoop []halfedge.VertexID
			edgeLoop   []halfedge.EdgeID
		)
		e := start
		for guard := m.EdgeCount(); guard > 0; guard-- {
			v := m.To(e)
			j := 0
			for ; j < len(vertexLoop); j++ {
				if m.IsColocal(v, vertexLoop[j]) {
					break
				}
			}
			if j != len(vertexLoop) {
				prev := edgeLoop[j]
				next := m.Edge(e).Next
				edgeLoop = append(edgeLoop, e)
				c.closeLoop(edgeLoop[j+1:], eps)
				m.SetNext(prev, next)
				m.SetVertexEdge(v, next)
				vertexLoop, edgeLoop = vertexLoop[:0], edgeLoop[:0]
				e = start
				v = m.To(e)
			}
			vertexLoop = append(vertexLoop, v)
			edgeLoop = append(edgeLoop, e)
			e = m.Edge(e).Next
			if e == start || e == halfedge.NilEdge {
				break
			}
		}
		c.closeLoop(edgeLoop, eps)
	}

	left := len(m.BoundaryLoops())
	c.logger.Debug("closed holes", "loops", len(loops), "left", left)
	return left == 1
}

// closeLoop fills the faceless loop with one face when it is planar, or
// with a fan around its centroid otherwise.
func (c *Chart) closeLoop(loop []halfedge.EdgeID, eps float64) bool {
	m := c.unifiedMesh
	n := len(loop)
	if n < 3 {
		return false
	}
	points := make([]r3.Vec, n)
	for i, e := range loop {
		points[i] = m.Vertex(m.From(e)).Pos
	}
	if geom.IsPlanar(points, eps) {
		m.AttachLoop(m.AddEmptyFace(), append([]halfedge.EdgeID(nil), loop...))
		return true
	}
	centroid := m.AddVertex(geom.Centroid(points))
	corners := make([]halfedge.VertexID, n)
	for i, e := range loop {
		corners[i] = m.From(e)
	}
	for j, i := n-1, 0; i < n; j, i = i, i+1 {
		addOrDetach(m, []halfedge.VertexID{centroid, corners[j], corners[i]}, 0)
	}
	return true
}

//----------------------------------------------------------------------------//
// Accessors
//----------------------------------------------------------------------------//

// Faces returns the source faces of the chart.
func (c *Chart) Faces() []halfedge.FaceID { return c.faces }

// FaceCount returns len(Faces()).
func (c *Chart) FaceCount() int { return len(c.faces) }

// ChartMesh returns the attribute-preserving copy.
func (c *Chart) ChartMesh() *halfedge.Mesh { return c.chartMesh }

// UnifiedMesh returns the colocal-merged, hole-closed triangle mesh. It is
// nil for vertex-mapped charts.
func (c *Chart) UnifiedMesh() *halfedge.Mesh { return c.unifiedMesh }

// IsDisk reports whether the unified mesh is a topological disk.
func (c *Chart) IsDisk() bool { return c.isDisk }

// IsVertexMapped reports a chart built by BuildVertexMap.
func (c *Chart) IsVertexMapped() bool { return c.isVertexMapped }

// VertexCount returns the number of chart mesh vertices.
func (c *Chart) VertexCount() int { return c.chartMesh.VertexCount() }

// ColocalVertexCount returns the number of unified mesh vertices, or the
// chart vertex count for vertex-mapped charts.
func (c *Chart) ColocalVertexCount() int {
	if c.unifiedMesh == nil {
		return c.chartMesh.VertexCount()
	}
	return c.unifiedMesh.VertexCount()
}

// OriginalVertex maps chart vertex i to the source mesh.
func (c *Chart) OriginalVertex(i int) halfedge.VertexID { return c.chartToOriginal[i] }

// UnifiedVertex maps chart vertex i to the unified mesh, or NilVertex for
// vertex-mapped charts.
func (c *Chart) UnifiedVertex(i int) halfedge.VertexID {
	if c.isVertexMapped {
		return halfedge.NilVertex
	}
	return c.chartToUnified[i]
}

//----------------------------------------------------------------------------//
// Parameterization
//----------------------------------------------------------------------------//

// TransferParameterization copies unified UVs to the chart vertices. It is
// a no-op for vertex-mapped charts.
func (c *Chart) TransferParameterization() {
	if c.isVertexMapped {
		return
	}
	for i, u := range c.chartToUnified {
		c.chartMesh.Vertex(halfedge.VertexID(i)).Tex = c.unifiedMesh.Vertex(u).Tex
	}
}

// SurfaceArea returns the 3D area of the chart mesh times Scale.
func (c *Chart) SurfaceArea() float64 { return c.chartMesh.SurfaceArea() * c.Scale }

// ParametricArea returns the UV area of the chart mesh.
func (c *Chart) ParametricArea() float64 { return c.chartMesh.ParametricSurfaceArea() }

// ParametricBounds returns the half extents of the chart's UV box.
func (c *Chart) ParametricBounds() r2.Vec {
	if c.chartMesh.VertexCount() == 0 {
		return r2.Vec{}
	}
	lo, hi := c.chartMesh.TexBounds()
	return r2.Scale(0.5, r2.Sub(hi, lo))
}

// SaveUVs snapshots the chart mesh UVs.
func (c *Chart) SaveUVs() {
	n := c.chartMesh.VertexCount()
	c.savedUVs = c.savedUVs[:0]
	for i := 0; i < n; i++ {
		c.savedUVs = append(c.savedUVs, c.chartMesh.Vertex(halfedge.VertexID(i)).Tex)
	}
}

// RestoreUVs rewinds the chart mesh UVs to the last SaveUVs. Without a
// snapshot it does nothing.
func (c *Chart) RestoreUVs() {
	for i, uv := range c.savedUVs {
		c.chartMesh.Vertex(halfedge.VertexID(i)).Tex = uv
	}
}

// BoundaryPoints returns the UVs of the chart mesh boundary vertices, or of
// every vertex when the chart mesh has no boundary.
func (c *Chart) BoundaryPoints() []r2.Vec {
	m := c.chartMesh
	var pts []r2.Vec
	for i := 0; i < m.VertexCount(); i++ {
		if m.IsBoundary(halfedge.VertexID(i)) {
			pts = append(pts, m.Vertex(halfedge.VertexID(i)).Tex)
		}
	}
	if len(pts) == 0 {
		for i := 0; i < m.VertexCount(); i++ {
			pts = append(pts, m.Vertex(halfedge.VertexID(i)).Tex)
		}
	}
	return pts
}

// IsFinite reports whether every chart UV is a finite number.
func (c *Chart) IsFinite() bool {
	for i := 0; i < c.chartMesh.VertexCount(); i++ {
		t := c.chartMesh.Vertex(halfedge.VertexID(i)).Tex
		if math.IsNaN(t.X) || math.IsNaN(t.Y) || math.IsInf(t.X, 0) || math.IsInf(t.Y, 0) {
			return false
		}
	}
	return true
}
