// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle list with per-vertex attributes.
type Mesh struct {
	Positions []r3.Vec
	Normals   []r3.Vec
	UVs       []r2.Vec
	Indices   []uint32
}

// VertexCount returns len(Positions).
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// TriangleCount returns len(Indices)/3.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// addVertex appends one vertex and returns its index.
func (m *Mesh) addVertex(p, n r3.Vec, uv r2.Vec) uint32 {
	m.Positions = append(m.Positions, p)
	m.Normals = append(m.Normals, n)
	m.UVs = append(m.UVs, uv)
	return uint32(len(m.Positions) - 1)
}

func (m *Mesh) addTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// Constructor appends one part to m using the resolved configuration.
// Constructors validate parameters up front and return sentinel errors.
type Constructor func(m *Mesh, cfg builderConfig) error

// BuildMesh resolves bopts and applies every constructor in order.
//
// Complexity: the sum of the constructors' costs.
func BuildMesh(bopts []BuilderOption, cons ...Constructor) (*Mesh, error) {
	cfg := newBuilderConfig(bopts...)
	m := &Mesh{}
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("%s: nil constructor at index %d: %w", MethodBuildMesh, i, ErrConstructFailed)
		}
		if err := fn(m, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", MethodBuildMesh, err)
		}
	}
	return m, nil
}

// MustBuild is BuildMesh for fixtures whose parameters are known good; it
// panics on error.
func MustBuild(bopts []BuilderOption, cons ...Constructor) *Mesh {
	m, err := BuildMesh(bopts, cons...)
	if err != nil {
		panic(err)
	}
	return m
}

func wrap(method string, err error) error {
	return fmt.Errorf("%s: %w", method, err)
}
