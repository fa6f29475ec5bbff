// SPDX-License-Identifier: MIT

package segment

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/halfedge"
)

// Cost returns the price of adding face f to chart c: the weighted sum of
// proxy fit, roundness, straightness, normal seam and texture seam terms.
// It is +Inf when the chart would exceed MaxChartArea or MaxBoundaryLength,
// or when NormalSeamWeight is at least SharpEdgeWeight and f touches the
// chart across a normal seam.
//
// Errors: ErrChartOutOfRange, ErrFaceOutOfRange.
func (b *Builder) Cost(c int, f halfedge.FaceID) (float64, error) {
	if c < 0 || c >= len(b.charts) {
		return 0, fmt.Errorf("Cost: chart %d of %d: %w", c, len(b.charts), ErrChartOutOfRange)
	}
	if f < 0 || int(f) >= len(b.faceChart) {
		return 0, fmt.Errorf("Cost: face %d: %w", f, ErrFaceOutOfRange)
	}
	return b.cost(b.charts[c], f), nil
}

func (b *Builder) cost(ch *chartData, f halfedge.FaceID) float64 {
	newBoundary := b.boundaryLengthWith(ch, f)
	newArea := b.chartAreaWith(ch, f)

	fit := b.proxyFit(ch, f)
	round := roundness(ch, newBoundary, newArea)
	straight := b.straightness(ch, f)
	n := b.normalSeam(ch, f)
	t := b.textureSeam(ch, f)

	o := &b.opts
	cost := o.ProxyFitWeight*fit +
		o.RoundnessWeight*round +
		o.StraightnessWeight*straight +
		o.NormalSeamWeight*n +
		o.TextureSeamWeight*t

	if newArea > o.MaxChartArea || newBoundary > o.MaxBoundaryLength {
		return math.Inf(1)
	}
	if o.NormalSeamWeight >= SharpEdgeWeight && n != 0 {
		return math.Inf(1)
	}
	return cost
}

// proxyFit is 1 - dot(face normal, chart normal), in [0, 2].
func (b *Builder) proxyFit(c *chartData, f halfedge.FaceID) float64 {
	return 1 - r3.Dot(b.mesh.FaceNormal(f), c.planeNormal)
}

// roundness penalises candidates that make the chart less round, scaled so
// that a disk scores 1.
func roundness(c *chartData, newBoundary, newArea float64) float64 {
	if newArea <= 0 {
		return 0
	}
	ratio := newBoundary * newBoundary / newArea
	if c.area <= 0 || ratio <= c.boundaryLength*c.boundaryLength/c.area {
		return 0
	}
	return newBoundary * newBoundary / (newArea * 4 * math.Pi)
}

// straightness rewards faces that share more boundary with the chart than
// they expose. It never penalises.
func (b *Builder) straightness(c *chartData, f halfedge.FaceID) float64 {
	if b.mesh.Face(f).Ignored() {
		return 1
	}
	var lOut, lIn float64
	for _, e := range b.mesh.FaceEdges(f) {
		l := b.edgeLengths[e/2]
		if nf, ok := b.neighbour(e); ok && b.faceChart[nf] == c.id {
			lIn += l
		} else {
			lOut += l
		}
	}
	if lOut+lIn == 0 {
		return 0
	}
	return min((lOut-lIn)/(lOut+lIn), 0)
}

// normalSeam is the fraction of the edges f shares with c that are normal
// seams, each weighted by how much the normals disagree.
func (b *Builder) normalSeam(c *chartData, f halfedge.FaceID) float64 {
	m := b.mesh
	var seam, total float64
	for _, e := range m.FaceEdges(f) {
		nf, ok := b.neighbour(e)
		if !ok || b.faceChart[nf] != c.id {
			continue
		}
		l := b.edgeLengths[e/2]
		total += l
		if !m.IsSeam(e) || !m.IsNormalSeam(e) {
			continue
		}
		ed := m.Edge(e)
		pair := m.Edge(ed.Pair)
		a0, a1 := m.Vertex(ed.Vertex).Nor, m.Vertex(m.Edge(ed.Next).Vertex).Nor
		b0, b1 := m.Vertex(m.Edge(pair.Next).Vertex).Nor, m.Vertex(pair.Vertex).Nor
		d0 := clamp01(r3.Dot(a0, b0))
		d1 := clamp01(r3.Dot(a1, b1))
		seam += l * (1 - (d0+d1)*0.5)
	}
	if seam == 0 {
		return 0
	}
	return seam / total
}

// textureSeam is the fraction of the edges f shares with c that are
// texture seams.
func (b *Builder) textureSeam(c *chartData, f halfedge.FaceID) float64 {
	m := b.mesh
	var seam, total float64
	for _, e := range m.FaceEdges(f) {
		nf, ok := b.neighbour(e)
		if !ok || b.faceChart[nf] != c.id {
			continue
		}
		l := b.edgeLengths[e/2]
		total += l
		if m.IsSeam(e) && m.IsTextureSeam(e) {
			seam += l
		}
	}
	if seam == 0 {
		return 0
	}
	return seam / total
}

func (b *Builder) chartAreaWith(c *chartData, f halfedge.FaceID) float64 {
	return c.area + b.faceAreas[f]
}

// boundaryLengthWith returns c's boundary after adding f: edges shared
// with c are subtracted, the others added.
func (b *Builder) boundaryLengthWith(c *chartData, f halfedge.FaceID) float64 {
	length := c.boundaryLength
	for _, e := range b.mesh.FaceEdges(f) {
		l := b.edgeLengths[e/2]
		if nf, ok := b.neighbour(e); ok && b.faceChart[nf] == c.id {
			length -= l
		} else {
			length += l
		}
	}
	return max(0, length)
}

func clamp01(x float64) float64 { return max(0, min(x, 1)) }
