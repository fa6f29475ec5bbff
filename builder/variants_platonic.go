// SPDX-License-Identifier: MIT

package builder

import "math"

// PlatonicName enumerates the supported regular solids.
type PlatonicName int

// Enum values (stable ordering).
const (
	Tetrahedron PlatonicName = iota // V=4,  F=4
	Cube                            // V=8,  F=12 triangles
	Octahedron                      // V=6,  F=8
	Icosahedron                     // V=12, F=20
)

// String provides a readable identifier for logs and errors.
func (p PlatonicName) String() string {
	switch p {
	case Tetrahedron:
		return "Tetrahedron"
	case Cube:
		return "Cube"
	case Octahedron:
		return "Octahedron"
	case Icosahedron:
		return "Icosahedron"
	default:
		return "Unknown"
	}
}

// platonicShape is the canonical vertex and triangle dataset of one solid.
type platonicShape struct {
	verts [][3]float64
	tris  [][3]uint32
}

var platonicShapes = map[PlatonicName]platonicShape{
	Tetrahedron: {
		verts: [][3]float64{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}},
		tris:  [][3]uint32{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}},
	},
	// Vertex i has coordinates (bit0, bit1, bit2) mapped to ±1.
	Cube: {
		verts: [][3]float64{
			{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
		},
		tris: [][3]uint32{
			{0, 2, 3}, {0, 3, 1}, // -Z
			{4, 5, 7}, {4, 7, 6}, // +Z
			{0, 1, 5}, {0, 5, 4}, // -Y
			{2, 6, 7}, {2, 7, 3}, // +Y
			{0, 4, 6}, {0, 6, 2}, // -X
			{1, 3, 7}, {1, 7, 5}, // +X
		},
	},
	Octahedron: {
		verts: [][3]float64{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}},
		tris: [][3]uint32{
			{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
			{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
		},
	},
	Icosahedron: icosahedron(),
}

func icosahedron() platonicShape {
	t := (1 + math.Sqrt(5)) / 2
	return platonicShape{
		verts: [][3]float64{
			{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
			{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
			{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
		},
		tris: [][3]uint32{
			{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
			{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
			{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
			{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
		},
	}
}
