// SPDX-License-Identifier: MIT

package builder

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Tube returns a Constructor that appends an open unit-radius cylinder along
// +Z with the given number of segments around and rings of cells along its
// height. The first column of vertices is duplicated with u = 1, so the
// tube carries one texture seam; normals point outwards.
//
// Complexity: O(segments·rings).
func Tube(segments, rings int) Constructor {
	return func(m *Mesh, cfg builderConfig) error {
		if err := validateMin(MethodTube, "segments", segments, MinTubeSegments); err != nil {
			return err
		}
		if err := validateMin(MethodTube, "rings", rings, MinTubeRings); err != nil {
			return err
		}
		if err := cfg.check(MethodTube); err != nil {
			return err
		}
		base := uint32(m.VertexCount())
		cols := segments + 1
		height := 2 * math.Pi / float64(segments) * float64(rings)
		for r := 0; r <= rings; r++ {
			z := height * float64(r) / float64(rings)
			for c := 0; c < cols; c++ {
				a := 2 * math.Pi * float64(c%segments) / float64(segments)
				s, co := math.Sincos(a)
				n := r3.Vec{X: co, Y: s}
				uv := r2.Vec{X: float64(c) / float64(segments), Y: float64(r) / float64(rings)}
				m.addVertex(cfg.place(r3.Vec{X: co, Y: s, Z: z}), n, uv)
			}
		}
		stride := uint32(cols)
		for r := 0; r < rings; r++ {
			for c := 0; c < segments; c++ {
				i := base + uint32(r)*stride + uint32(c)
				m.addTriangle(i, i+1, i+stride+1)
				m.addTriangle(i, i+stride+1, i+stride)
			}
		}
		return nil
	}
}
