// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// PlatonicSolid returns a Constructor that appends the chosen closed shell
// with shared vertices, radial normals and zero UVs. Triangles are wound
// counter-clockwise seen from outside.
//
// Complexity: O(V+F), both bounded by 20.
func PlatonicSolid(name PlatonicName) Constructor {
	return func(m *Mesh, cfg builderConfig) error {
		shape, ok := platonicShapes[name]
		if !ok {
			return fmt.Errorf("%s: unknown solid %q: %w", MethodPlatonicSolid, name, ErrOptionViolation)
		}
		if err := cfg.check(MethodPlatonicSolid); err != nil {
			return err
		}
		base := uint32(m.VertexCount())
		for _, v := range shape.verts {
			p := r3.Vec{X: v[0], Y: v[1], Z: v[2]}
			m.addVertex(cfg.place(p), r3.Unit(p), r2.Vec{})
		}
		for _, t := range shape.tris {
			m.addTriangle(base+t[0], base+t[1], base+t[2])
		}
		return nil
	}
}

// SeamCube returns a Constructor that appends a cube with four vertices per
// side: each side has its own normal and a full [0,1]² UV square, so every
// cube edge is both a normal seam and a texture seam.
//
// Complexity: O(1).
func SeamCube() Constructor {
	return func(m *Mesh, cfg builderConfig) error {
		if err := cfg.check(MethodSeamCube); err != nil {
			return err
		}
		cube := platonicShapes[Cube]
		for side := 0; side < 6; side++ {
			a, b := cube.tris[2*side], cube.tris[2*side+1]
			// Quad corners in ring order: a0 a1 a2 b2.
			quad := [4]uint32{a[0], a[1], a[2], b[2]}
			p0 := vec(cube.verts[quad[0]])
			n := r3.Unit(r3.Cross(r3.Sub(vec(cube.verts[quad[1]]), p0), r3.Sub(vec(cube.verts[quad[2]]), p0)))
			uvs := [4]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
			var idx [4]uint32
			for i, q := range quad {
				idx[i] = m.addVertex(cfg.place(vec(cube.verts[q])), n, uvs[i])
			}
			m.addTriangle(idx[0], idx[1], idx[2])
			m.addTriangle(idx[0], idx[2], idx[3])
		}
		return nil
	}
}

func vec(v [3]float64) r3.Vec { return r3.Vec{X: v[0], Y: v[1], Z: v[2]} }
