// SPDX-License-Identifier: MIT

package pack

import "errors"

var (
	// ErrInvalidOptions indicates an Options value that fails Validate.
	ErrInvalidOptions = errors.New("pack: invalid options")

	// ErrNilChart indicates a nil entry in the chart list.
	ErrNilChart = errors.New("pack: nil chart")
)
