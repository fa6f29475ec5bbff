// SPDX-License-Identifier: MIT

package segment

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"

	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/geom"
	"github.com/katalvlaran/uvatlas/halfedge"
)

// Face states stored in place of a chart index.
const (
	Unassigned = -1
	Excluded   = -2
)

// MinSeedCount is the lower bound on the number of seeds Run places.
const MinSeedCount = 6

// chartData is the growing state of one chart.
type chartData struct {
	id int

	planeNormal r3.Vec
	centroid    r3.Vec

	area           float64
	boundaryLength float64
	normalSum      r3.Vec
	centroidSum    r3.Vec

	seeds      []halfedge.FaceID
	faces      []halfedge.FaceID
	candidates *CandidateQueue
}

// globalCandidate is the best known chart for an unassigned face.
type globalCandidate struct {
	face  halfedge.FaceID
	chart *chartData
	cost  float64
}

// Builder partitions the faces of one mesh into charts.
type Builder struct {
	mesh   *halfedge.Mesh
	opts   Options
	rng    *rand.Rand
	logger *slog.Logger

	facesLeft int
	faceChart []int
	excluded  *bitset.BitSet

	charts []*chartData

	// pair-indexed edge lengths and face areas, zero for ignored faces
	edgeLengths []float64
	faceAreas   []float64

	candidates    []globalCandidate
	faceCandidate []int // index into candidates or -1
}

// NewBuilder prepares segmentation of m, which must have been linked with
// LinkBoundary. A nil rng uses a fixed seed; a nil logger discards.
//
// Errors: ErrInvalidOptions from opts.Validate.
//
// Complexity: O(E + F).
func NewBuilder(m *halfedge.Mesh, opts Options, rng *rand.Rand, logger *slog.Logger) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("NewBuilder: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	n := m.FaceCount()
	b := &Builder{
		mesh:          m,
		opts:          opts,
		rng:           rng,
		logger:        logger,
		facesLeft:     n,
		faceChart:     make([]int, n),
		excluded:      bitset.New(uint(n)),
		faceAreas:     make([]float64, n),
		faceCandidate: make([]int, n),
		edgeLengths:   make([]float64, (m.EdgeCount()+1)/2),
	}
	for i := 0; i < n; i++ {
		b.faceChart[i] = Unassigned
		b.faceCandidate[i] = -1
		if !m.Face(halfedge.FaceID(i)).Ignored() {
			b.faceAreas[i] = m.FaceArea(halfedge.FaceID(i))
		}
	}
	for e := 0; e < m.EdgeCount(); e += 2 {
		id := halfedge.EdgeID(e)
		if !m.IsLive(id) || b.ignoredSide(id) || (m.IsLive(id.Pair()) && b.ignoredSide(id.Pair())) {
			continue
		}
		b.edgeLengths[e/2] = m.EdgeLength(id)
	}
	return b, nil
}

func (b *Builder) ignoredSide(e halfedge.EdgeID) bool {
	f := b.mesh.Edge(e).Face
	return f != halfedge.NilFace && b.mesh.Face(f).Ignored()
}

//----------------------------------------------------------------------------//
// Queries
//----------------------------------------------------------------------------//

// ChartCount returns the number of live charts.
func (b *Builder) ChartCount() int { return len(b.charts) }

// ChartFaces returns the faces of chart i in insertion order.
func (b *Builder) ChartFaces(i int) []halfedge.FaceID { return b.charts[i].faces }

// ChartSeed returns the current seed of chart i.
func (b *Builder) ChartSeed(i int) halfedge.FaceID {
	s := b.charts[i].seeds
	return s[len(s)-1]
}

// FacesLeft returns the number of unassigned faces.
func (b *Builder) FacesLeft() int { return b.facesLeft }

// FaceChart returns the chart of f, Unassigned or Excluded.
func (b *Builder) FaceChart(f halfedge.FaceID) int { return b.faceChart[f] }

//----------------------------------------------------------------------------//
// Seeding and growth
//----------------------------------------------------------------------------//

// MarkUnchartedFaces excludes faces from charting. Faces already excluded
// are skipped.
//
// Errors: ErrFaceOutOfRange.
func (b *Builder) MarkUnchartedFaces(faces []halfedge.FaceID) error {
	for _, f := range faces {
		if f < 0 || int(f) >= len(b.faceChart) {
			return fmt.Errorf("MarkUnchartedFaces: face %d: %w", f, ErrFaceOutOfRange)
		}
	}
	for _, f := range faces {
		b.exclude(f)
	}
	return nil
}

func (b *Builder) exclude(f halfedge.FaceID) {
	if b.excluded.Test(uint(f)) {
		return
	}
	b.excluded.Set(uint(f))
	if b.faceChart[f] == Unassigned {
		b.facesLeft--
	}
	b.faceChart[f] = Excluded
	b.removeCandidate(f)
}

// PlaceSeeds creates up to maxSeedCount charts, each grown from a random
// unassigned face until its best candidate costs more than threshold/2.
func (b *Builder) PlaceSeeds(threshold float64, maxSeedCount int) {
	for i := 0; i < maxSeedCount && b.facesLeft > 0; i++ {
		b.createRandomChart(threshold)
	}
	b.logger.Debug("placed seeds", "charts", len(b.charts), "max", maxSeedCount)
}

func (b *Builder) createRandomChart(threshold float64) {
	c := &chartData{id: len(b.charts), candidates: NewCandidateQueue(0)}
	b.charts = append(b.charts, c)

	pick := b.rng.Intn(b.facesLeft)
	f := 0
	for ; ; f++ {
		if b.faceChart[f] != Unassigned {
			continue
		}
		if pick == 0 {
			break
		}
		pick--
	}
	seed := halfedge.FaceID(f)
	c.seeds = append(c.seeds, seed)
	b.addFaceToChart(c, seed, true)
	b.growChart(c, threshold*0.5, b.facesLeft)
}

func (b *Builder) addFaceToChart(c *chartData, f halfedge.FaceID, recomputeProxy bool) {
	c.faces = append(c.faces, f)
	b.faceChart[f] = c.id
	b.facesLeft--

	c.area = b.chartAreaWith(c, f)
	c.boundaryLength = b.boundaryLengthWith(c, f)
	c.normalSum = r3.Add(c.normalSum, b.mesh.FaceNormalAreaScaled(f))
	c.centroidSum = r3.Add(c.centroidSum, b.mesh.FaceCentroid(f))
	if recomputeProxy {
		b.updateProxy(c)
	}

	b.removeCandidate(f)
	for _, e := range b.mesh.FaceEdges(f) {
		if nf, ok := b.neighbour(e); ok && b.faceChart[nf] == Unassigned {
			c.candidates.PushUnsorted(nf)
		}
	}
	b.updatePriorities(c)
}

// neighbour returns the face across e, if any.
func (b *Builder) neighbour(e halfedge.EdgeID) (halfedge.FaceID, bool) {
	if b.mesh.IsBoundaryEdge(e) {
		return halfedge.NilFace, false
	}
	return b.mesh.Edge(b.mesh.Edge(e).Pair).Face, true
}

func (b *Builder) updatePriorities(c *chartData) {
	for i := range c.candidates.items {
		it := &c.candidates.items[i]
		it.Cost = b.cost(c, it.Face)
		if b.faceChart[it.Face] == Unassigned {
			b.updateCandidate(c, it.Face, it.Cost)
		}
	}
	c.candidates.Sort()
}

// growChart adds up to count faces to c while its best candidate costs at
// most threshold. It reports whether c could keep growing.
func (b *Builder) growChart(c *chartData, threshold float64, count int) bool {
	for added := 0; added < count; {
		best, ok := c.candidates.Best()
		if !ok || best.Cost > threshold {
			return false
		}
		c.candidates.Pop()
		if b.faceChart[best.Face] == Unassigned {
			b.addFaceToChart(c, best.Face, false)
			added++
		}
	}
	best, ok := c.candidates.Best()
	return ok && best.Cost <= threshold
}

// GrowCharts adds up to faceCount faces, each time taking the cheapest
// candidate over all charts. It returns false when the cheapest candidate
// costs more than threshold or no unassigned face is left.
func (b *Builder) GrowCharts(threshold float64, faceCount int) bool {
	n := min(faceCount, b.facesLeft)
	for i := 0; i < n; i++ {
		if len(b.candidates) == 0 {
			return false
		}
		best := 0
		for j := 1; j < len(b.candidates); j++ {
			if b.candidates[j].cost < b.candidates[best].cost {
				best = j
			}
		}
		cand := b.candidates[best]
		if cand.cost > threshold {
			return false
		}
		b.addFaceToChart(cand.chart, cand.face, false)
	}
	return b.facesLeft != 0
}

// FillHoles turns every remaining unassigned face into part of a new chart.
func (b *Builder) FillHoles(threshold float64) {
	before := len(b.charts)
	for b.facesLeft > 0 {
		b.createRandomChart(threshold)
	}
	if added := len(b.charts) - before; added > 0 {
		b.logger.Debug("filled holes", "charts", added)
	}
}

func (b *Builder) removeCandidate(f halfedge.FaceID) {
	i := b.faceCandidate[f]
	if i < 0 {
		return
	}
	b.faceCandidate[f] = -1
	last := len(b.candidates) - 1
	if i != last {
		b.candidates[i] = b.candidates[last]
		b.faceCandidate[b.candidates[i].face] = i
	}
	b.candidates = b.candidates[:last]
}

func (b *Builder) updateCandidate(c *chartData, f halfedge.FaceID, cost float64) {
	i := b.faceCandidate[f]
	if i < 0 {
		b.faceCandidate[f] = len(b.candidates)
		b.candidates = append(b.candidates, globalCandidate{face: f, chart: c, cost: cost})
		return
	}
	cand := &b.candidates[i]
	if cost < cand.cost || cand.chart == c {
		cand.cost = cost
		cand.chart = c
	}
}

//----------------------------------------------------------------------------//
// Proxies, seeds and merging
//----------------------------------------------------------------------------//

// UpdateProxies recomputes every chart's plane normal and centroid.
func (b *Builder) UpdateProxies() {
	for _, c := range b.charts {
		b.updateProxy(c)
	}
}

func (b *Builder) updateProxy(c *chartData) {
	c.planeNormal = geom.NormalizeSafe(c.normalSum, r3.Vec{}, 0)
	if len(c.faces) > 0 {
		c.centroid = r3.Scale(1/float64(len(c.faces)), c.centroidSum)
	}
}

// RelocateSeeds moves each chart's seed to the face nearest the chart
// centre among its BestSeedCandidates best-fitting faces. A face that was
// already a seed of the chart is reused without counting as a change. It
// reports whether any seed changed.
func (b *Builder) RelocateSeeds() bool {
	changed := false
	for _, c := range b.charts {
		if b.relocateSeed(c) {
			changed = true
		}
	}
	return changed
}

func (b *Builder) relocateSeed(c *chartData) bool {
	if len(c.faces) == 0 {
		return false
	}
	var centre r3.Vec
	for _, f := range c.faces {
		centre = r3.Add(centre, b.mesh.FaceCenter(f))
	}
	centre = r3.Scale(1/float64(len(c.faces)), centre)

	best := NewCandidateQueue(BestSeedCandidates)
	for _, f := range c.faces {
		best.Push(f, b.proxyFit(c, f))
	}
	central, minDist := halfedge.NilFace, math.Inf(1)
	for _, f := range best.Faces() {
		d := r3.Norm(r3.Sub(centre, b.mesh.FaceCenter(f)))
		if d < minDist {
			central, minDist = f, d
		}
	}

	for i, s := range c.seeds {
		if s == central {
			last := len(c.seeds) - 1
			c.seeds[i], c.seeds[last] = c.seeds[last], c.seeds[i]
			return false
		}
	}
	c.seeds = append(c.seeds, central)
	return true
}

// ResetCharts clears every assignment, restores the excluded faces and
// regrows each chart from its current seed. Proxies are kept.
func (b *Builder) ResetCharts() {
	for i := range b.faceChart {
		b.faceChart[i] = Unassigned
		b.faceCandidate[i] = -1
	}
	b.facesLeft = len(b.faceChart)
	b.candidates = b.candidates[:0]
	for i, ok := b.excluded.NextSet(0); ok; i, ok = b.excluded.NextSet(i + 1) {
		b.faceChart[i] = Excluded
		b.facesLeft--
	}
	for _, c := range b.charts {
		c.area, c.boundaryLength = 0, 0
		c.normalSum, c.centroidSum = r3.Vec{}, r3.Vec{}
		c.faces = c.faces[:0]
		c.candidates.Clear()
	}
	for _, c := range b.charts {
		b.addFaceToChart(c, c.seeds[len(c.seeds)-1], false)
	}
}

// MergeCharts absorbs charts into older neighbours. Chart c joins an older
// chart d when their shared boundary exceeds 80% of c's internal boundary
// (the part not on mesh borders, seams or excluded faces), d's boundary is
// longer than the shared part and their normals are within dot > -0.25; or
// when the shared boundary exceeds 20% and dot > 0. Merged charts are
// removed and the survivors renumbered.
//
// Complexity: O(F·k + K²).
func (b *Builder) MergeCharts() {
	n := len(b.charts)
	shared := make([]float64, n)
	merged := 0
	for ci := n - 1; ci >= 0; ci-- {
		c := b.charts[ci]
		for i := range shared {
			shared[i] = 0
		}
		external := 0.0
		for _, f := range c.faces {
			for _, e := range b.mesh.FaceEdges(f) {
				l := b.edgeLengths[e/2]
				nf, ok := b.neighbour(e)
				if !ok {
					external += l
					continue
				}
				nc := b.faceChart[nf]
				if nc == ci {
					continue
				}
				if nc < 0 || (b.mesh.IsSeam(e) && (b.mesh.IsNormalSeam(e) || b.mesh.IsTextureSeam(e))) {
					external += l
					continue
				}
				shared[nc] += l
			}
		}
		internal := max(0, c.boundaryLength-external)
		for di := ci - 1; di >= 0; di-- {
			d := b.charts[di]
			if d == nil || shared[di] == 0 {
				continue
			}
			dot := r3.Dot(d.planeNormal, c.planeNormal)
			if (shared[di] > 0.8*internal && d.boundaryLength > shared[di] && dot > -0.25) ||
				(shared[di] > 0.2*internal && dot > 0) {
				b.mergeChart(d, c, shared[di])
				b.charts[ci] = nil
				merged++
				break
			}
		}
	}
	if merged == 0 {
		return
	}

	remap := make([]int, n)
	live := b.charts[:0]
	for i, c := range b.charts {
		remap[i] = -1
		if c != nil {
			remap[i] = len(live)
			c.id = len(live)
			live = append(live, c)
		}
	}
	for i := n - merged; i < n; i++ {
		b.charts[i] = nil
	}
	b.charts = live
	for f, c := range b.faceChart {
		if c >= 0 {
			b.faceChart[f] = remap[c]
		}
	}
	b.logger.Debug("merged charts", "merged", merged, "charts", len(b.charts))
}

func (b *Builder) mergeChart(owner, c *chartData, sharedLength float64) {
	for _, f := range c.faces {
		b.faceChart[f] = owner.id
		owner.faces = append(owner.faces, f)
	}
	owner.area += c.area
	owner.boundaryLength = max(0, owner.boundaryLength+c.boundaryLength-2*sharedLength)
	owner.normalSum = r3.Add(owner.normalSum, c.normalSum)
	owner.centroidSum = r3.Add(owner.centroidSum, c.centroidSum)
	b.updateProxy(owner)
}

//----------------------------------------------------------------------------//
// Driver
//----------------------------------------------------------------------------//

// Run segments the mesh: seeds are placed greedily and merged, then charts
// are regrown in parallel from relocated seeds until the seeds settle or
// Options.MaxIterations reseed rounds have run. On return every face that
// is not excluded belongs to a chart.
func (b *Builder) Run() {
	if b.facesLeft == 0 {
		return
	}
	maxSeeds := max(MinSeedCount, b.facesLeft)
	b.PlaceSeeds(b.opts.MaxThreshold, maxSeeds)
	b.UpdateProxies()
	b.MergeCharts()
	b.RelocateSeeds()
	b.ResetCharts()

	iteration := 0
	for {
		if b.GrowCharts(b.opts.MaxThreshold, b.opts.GrowFaceCount) {
			continue
		}
		b.FillHoles(b.opts.MaxThreshold)
		b.UpdateProxies()
		b.MergeCharts()
		if !b.RelocateSeeds() {
			b.logger.Debug("seeds settled", "iteration", iteration, "charts", len(b.charts))
			break
		}
		if iteration == b.opts.MaxIterations {
			b.logger.Debug("iteration limit", "iteration", iteration, "charts", len(b.charts))
			break
		}
		iteration++
		b.ResetCharts()
	}
}
