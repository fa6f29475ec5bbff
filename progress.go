// SPDX-License-Identifier: MIT

package uvatlas

import "fmt"

// ProgressCategory names the phase a progress report belongs to.
type ProgressCategory int

const (
	ComputingCharts ProgressCategory = iota
	ParameterizingCharts
	PackingCharts
	BuildingOutputMeshes
)

// String returns the phase name.
func (c ProgressCategory) String() string {
	switch c {
	case ComputingCharts:
		return "computing charts"
	case ParameterizingCharts:
		return "parameterizing charts"
	case PackingCharts:
		return "packing charts"
	case BuildingOutputMeshes:
		return "building output meshes"
	default:
		return fmt.Sprintf("ProgressCategory(%d)", int(c))
	}
}

// ProgressFunc receives phase progress in percent. Reports of one phase
// start at 0, never decrease and end with exactly one 100.
type ProgressFunc func(category ProgressCategory, percent int)

// progress reports one phase. A nil callback makes every method a no-op.
type progress struct {
	fn   ProgressFunc
	cat  ProgressCategory
	last int
}

func startProgress(fn ProgressFunc, cat ProgressCategory) *progress {
	p := &progress{fn: fn, cat: cat}
	if fn != nil {
		fn(cat, 0)
	}
	return p
}

// step reports done out of total units when the percentage moved.
func (p *progress) step(done, total int) {
	if p.fn == nil || total <= 0 {
		return
	}
	pct := min(100*done/total, 99)
	if pct > p.last {
		p.last = pct
		p.fn(p.cat, pct)
	}
}

func (p *progress) finish() {
	if p.fn != nil {
		p.last = 100
		p.fn(p.cat, 100)
	}
}
