// SPDX-License-Identifier: MIT

package pack_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/uvatlas/pack"
)

func BenchmarkPackQuads(b *testing.B) {
	charts := quadCharts(b, 8)
	opts := pack.DefaultOptions()
	opts.Resolution = 256
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pack.New(pack.WithRand(rand.New(rand.NewSource(int64(i))))).Pack(charts, opts); err != nil {
			b.Fatal(err)
		}
	}
}
