// SPDX-License-Identifier: MIT

package uvatlas_test

import (
	"testing"

	"github.com/katalvlaran/uvatlas"
	"github.com/katalvlaran/uvatlas/builder"
)

func BenchmarkGenerateCharts(b *testing.B) {
	src := builder.MustBuild(nil, builder.Tube(32, 16))
	a := uvatlas.New()
	if code := a.AddMesh(input(src)); code != uvatlas.Success {
		b.Fatal(code)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := a.GenerateCharts(uvatlas.DefaultChartOptions(), nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPackCharts(b *testing.B) {
	src := builder.MustBuild(nil, builder.Tube(32, 16))
	a := uvatlas.New()
	if code := a.AddMesh(input(src)); code != uvatlas.Success {
		b.Fatal(code)
	}
	if err := a.GenerateCharts(uvatlas.DefaultChartOptions(), nil); err != nil {
		b.Fatal(err)
	}
	opts := uvatlas.DefaultPackOptions()
	opts.Resolution = 256
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := a.PackCharts(opts, nil); err != nil {
			b.Fatal(err)
		}
	}
}
