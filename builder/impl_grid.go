// SPDX-License-Identifier: MIT

package builder

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Grid returns a Constructor that appends a flat rows×cols grid of unit
// cells in the XY plane facing +Z. Vertices are row-major; UVs span [0,1]².
//
// Complexity: O(rows·cols).
func Grid(rows, cols int) Constructor {
	return func(m *Mesh, cfg builderConfig) error {
		if err := validateMin(MethodGrid, "rows", rows, MinGridDim); err != nil {
			return err
		}
		if err := validateMin(MethodGrid, "cols", cols, MinGridDim); err != nil {
			return err
		}
		if err := cfg.check(MethodGrid); err != nil {
			return err
		}
		base := uint32(m.VertexCount())
		n := r3.Vec{Z: 1}
		for r := 0; r <= rows; r++ {
			for c := 0; c <= cols; c++ {
				p := r3.Vec{X: float64(c), Y: float64(r)}
				uv := r2.Vec{X: float64(c) / float64(cols), Y: float64(r) / float64(rows)}
				m.addVertex(cfg.place(p), n, uv)
			}
		}
		stride := uint32(cols + 1)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				i := base + uint32(r)*stride + uint32(c)
				m.addTriangle(i, i+1, i+stride+1)
				m.addTriangle(i, i+stride+1, i+stride)
			}
		}
		return nil
	}
}
