// SPDX-License-Identifier: MIT

package segment_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/uvatlas/builder"
	"github.com/katalvlaran/uvatlas/segment"
)

func BenchmarkRunTube(b *testing.B) {
	src := builder.MustBuild(nil, builder.Tube(32, 16))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		m := load(b, src)
		sb, err := segment.NewBuilder(m, segment.DefaultOptions(), rand.New(rand.NewSource(int64(i))), nil)
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		sb.Run()
	}
}
