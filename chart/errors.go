// SPDX-License-Identifier: MIT

package chart

import "errors"

var (
	// ErrNoFaces is returned by Build when the face list is empty.
	ErrNoFaces = errors.New("chart: no faces")

	// ErrFaceOutOfRange is returned when a face handle is not in the source mesh.
	ErrFaceOutOfRange = errors.New("chart: face out of range")
)
