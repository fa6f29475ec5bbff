// SPDX-License-Identifier: MIT

package builder

// Method tags used as error context.
const (
	MethodBuildMesh     = "BuildMesh"
	MethodPlatonicSolid = "PlatonicSolid"
	MethodSeamCube      = "SeamCube"
	MethodGrid          = "Grid"
	MethodWheel         = "Wheel"
	MethodTube          = "Tube"
)

// Minimum sizes.
const (
	// MinGridDim is the smallest number of cells along a grid axis.
	MinGridDim = 1
	// MinWheelSpokes is the smallest rim size of a Wheel.
	MinWheelSpokes = 3
	// MinTubeSegments is the smallest number of segments around a Tube.
	MinTubeSegments = 3
	// MinTubeRings is the smallest number of cell rows along a Tube.
	MinTubeRings = 1
)

// Placement defaults.
const (
	DefaultScale  = 1.0
	DefaultJitter = 0.0
)
