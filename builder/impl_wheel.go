// SPDX-License-Identifier: MIT

package builder

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Wheel returns a Constructor that appends a unit disk in the XY plane: a
// hub vertex followed by n rim vertices, joined by n counter-clockwise
// triangles.
//
// Complexity: O(n).
func Wheel(n int) Constructor {
	return func(m *Mesh, cfg builderConfig) error {
		if err := validateMin(MethodWheel, "n", n, MinWheelSpokes); err != nil {
			return err
		}
		if err := cfg.check(MethodWheel); err != nil {
			return err
		}
		up := r3.Vec{Z: 1}
		hub := m.addVertex(cfg.place(r3.Vec{}), up, r2.Vec{X: 0.5, Y: 0.5})
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / float64(n)
			s, c := math.Sincos(a)
			m.addVertex(cfg.place(r3.Vec{X: c, Y: s}), up, r2.Vec{X: 0.5 + 0.5*c, Y: 0.5 + 0.5*s})
		}
		for i := 0; i < n; i++ {
			m.addTriangle(hub, hub+1+uint32(i), hub+1+uint32((i+1)%n))
		}
		return nil
	}
}

// Degenerate returns a Constructor that appends two vertices and one
// triangle that repeats its first index.
func Degenerate() Constructor {
	return func(m *Mesh, cfg builderConfig) error {
		a := m.addVertex(cfg.place(r3.Vec{}), r3.Vec{Z: 1}, r2.Vec{})
		b := m.addVertex(cfg.place(r3.Vec{X: 1}), r3.Vec{Z: 1}, r2.Vec{X: 1})
		m.addTriangle(a, a, b)
		return nil
	}
}
