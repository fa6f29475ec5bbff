// SPDX-License-Identifier: MIT

package builder

import "errors"

// ErrTooFewSegments indicates that a size parameter (rows, cols, segments,
// rings) is below the constructor's minimum.
var ErrTooFewSegments = errors.New("builder: parameter too small")

// ErrNeedRandSource indicates that WithJitter was requested without an RNG.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrOptionViolation indicates an unknown enumerated parameter, such as an
// unsupported PlatonicName.
var ErrOptionViolation = errors.New("builder: option violation")

// ErrConstructFailed indicates a nil constructor or an internally
// inconsistent dataset.
var ErrConstructFailed = errors.New("builder: construction failed")
