// SPDX-License-Identifier: MIT

package chart_test

import (
	"fmt"

	"github.com/katalvlaran/uvatlas/builder"
	"github.com/katalvlaran/uvatlas/chart"
	"github.com/katalvlaran/uvatlas/halfedge"
)

// ExampleBuild caps one rim of an open tube so the chart can be flattened.
func ExampleBuild() {
	src := builder.MustBuild(nil, builder.Tube(6, 1))
	m := halfedge.New()
	for _, p := range src.Positions {
		m.AddVertex(p)
	}
	m.LinkColocals()
	var faces []halfedge.FaceID
	for i := 0; i < len(src.Indices); i += 3 {
		f, err := m.AddFace([]halfedge.VertexID{
			halfedge.VertexID(src.Indices[i]),
			halfedge.VertexID(src.Indices[i+1]),
			halfedge.VertexID(src.Indices[i+2]),
		}, 0)
		if err != nil {
			fmt.Println(err)
			return
		}
		faces = append(faces, f)
	}
	m.LinkBoundary()

	c, err := chart.Build(m, faces)
	fmt.Println(err, c.IsDisk())
	fmt.Println(c.VertexCount(), c.ColocalVertexCount())
	// Output:
	// <nil> true
	// 14 12
}
