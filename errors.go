// SPDX-License-Identifier: MIT

package uvatlas

import "errors"

var (
	// ErrNoMeshes is returned by GenerateCharts when no mesh was added.
	ErrNoMeshes = errors.New("uvatlas: no meshes")

	// ErrNotCharted is returned by PackCharts before a successful
	// GenerateCharts.
	ErrNotCharted = errors.New("uvatlas: charts not generated")

	// ErrInvalidOptions wraps the option errors of the segment and pack
	// packages.
	ErrInvalidOptions = errors.New("uvatlas: invalid options")
)
