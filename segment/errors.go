// SPDX-License-Identifier: MIT

package segment

import "errors"

var (
	// ErrInvalidOptions is returned when a weight or limit is NaN or negative.
	ErrInvalidOptions = errors.New("segment: invalid options")

	// ErrFaceOutOfRange is returned when a face handle is not in the mesh.
	ErrFaceOutOfRange = errors.New("segment: face out of range")

	// ErrChartOutOfRange is returned when a chart index is not live.
	ErrChartOutOfRange = errors.New("segment: chart out of range")
)
