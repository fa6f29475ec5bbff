// SPDX-License-Identifier: MIT

package pack_test

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/uvatlas/builder"
	"github.com/katalvlaran/uvatlas/chart"
	"github.com/katalvlaran/uvatlas/halfedge"
	"github.com/katalvlaran/uvatlas/pack"
)

// ExamplePacker_Pack places the four cells of a 2×2 grid, each its own
// chart, at four texels per unit.
func ExamplePacker_Pack() {
	src := builder.MustBuild(nil, builder.Grid(2, 2))
	m := halfedge.New()
	for _, p := range src.Positions {
		v := m.AddVertex(p)
		m.Vertex(v).Tex = r2.Vec{X: p.X, Y: p.Y}
	}
	m.LinkColocals()
	for i := 0; i < len(src.Indices); i += 3 {
		m.AddFace([]halfedge.VertexID{
			halfedge.VertexID(src.Indices[i]),
			halfedge.VertexID(src.Indices[i+1]),
			halfedge.VertexID(src.Indices[i+2]),
		}, 0)
	}
	m.LinkBoundary()

	var charts []*chart.Chart
	for f := halfedge.FaceID(0); int(f) < m.FaceCount(); f += 2 {
		c, err := chart.Build(m, []halfedge.FaceID{f, f + 1})
		if err != nil {
			fmt.Println(err)
			return
		}
		c.SaveUVs()
		charts = append(charts, c)
	}

	opts := pack.DefaultOptions()
	opts.Method = pack.TexelArea
	opts.TexelArea = 4
	opts.Quality = 0
	res, err := pack.New().Pack(charts, opts)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(res.Placements), res.Width%pack.BlockSize, res.Height%pack.BlockSize)
	fmt.Println(res.UsedTexels > 0 && res.UsedTexels <= res.Width*res.Height)
	// Output:
	// 4 0 0
	// true
}
