// SPDX-License-Identifier: MIT

package uvatlas

import (
	"github.com/katalvlaran/uvatlas/halfedge"
)

// OutputVertex is one atlas vertex. UV is in texels; Xref is the index of
// the input vertex it was copied from.
type OutputVertex struct {
	UV   [2]float32
	Xref int
}

// OutputChart lists the triangles of one chart as indices into the output
// vertices. Valid is false for charts that are not topological disks or
// whose parameterization has flipped triangles.
type OutputChart struct {
	Indices []uint32
	Valid   bool
}

// OutputMesh mirrors one input mesh. Indices has one entry per input index,
// in input order; ignored triangles point at vertices with UV (0,0).
type OutputMesh struct {
	Vertices []OutputVertex
	Indices  []uint32
	Charts   []OutputChart
}

// buildOutput gathers chart vertices in chart order, then maps every input
// triangle to its chart mesh face.
//
// Complexity: O(V + F).
func buildOutput(m *halfedge.Mesh, mc *meshCharts) OutputMesh {
	out := OutputMesh{
		Vertices: make([]OutputVertex, 0, mc.vertices),
		Indices:  make([]uint32, 0, 3*m.FaceCount()),
	}
	for _, c := range mc.charts {
		cm := c.ChartMesh()
		for v := 0; v < cm.VertexCount(); v++ {
			uv := cm.Vertex(halfedge.VertexID(v)).Tex
			out.Vertices = append(out.Vertices, OutputVertex{
				UV:   [2]float32{float32(max(0, uv.X)), float32(max(0, uv.Y))},
				Xref: int(c.OriginalVertex(v)),
			})
		}
	}

	corners := func(f int) []uint32 {
		ci := mc.faceChart[f]
		c := mc.charts[ci]
		vs := c.ChartMesh().FaceVertices(halfedge.FaceID(mc.faceIndex[f]))
		idx := make([]uint32, len(vs))
		for k, v := range vs {
			idx[k] = uint32(mc.offset[ci] + int(v))
		}
		return idx
	}
	for f := 0; f < m.FaceCount(); f++ {
		out.Indices = append(out.Indices, corners(f)...)
	}

	for ci, c := range mc.charts {
		if c.IsVertexMapped() {
			continue
		}
		oc := OutputChart{Indices: make([]uint32, 0, 3*c.FaceCount()), Valid: mc.valid[ci]}
		for _, f := range c.Faces() {
			oc.Indices = append(oc.Indices, corners(int(f))...)
		}
		out.Charts = append(out.Charts, oc)
	}
	return out
}
