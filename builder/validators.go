// SPDX-License-Identifier: MIT

package builder

import "fmt"

// validateMin reports got < min for the named size parameter, wrapping
// ErrTooFewSegments.
//
// Complexity: O(1).
func validateMin(method, name string, got, min int) error {
	if got < min {
		return fmt.Errorf("%s: %s=%d (must be ≥ %d): %w", method, name, got, min, ErrTooFewSegments)
	}
	return nil
}
