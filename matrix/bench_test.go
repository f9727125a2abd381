package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/collabgraph/core"
	"github.com/katalvlaran/collabgraph/matrix"
)

// BenchmarkExtend_Grow measures node registration including doubling growth.
func BenchmarkExtend_Grow(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m, _ := matrix.NewDense(0)
		for k := 0; k < 512; k++ {
			_, _ = m.Extend()
		}
	}
}

// BenchmarkAddNode_Presized measures registration when WithCapacity avoids growth.
func BenchmarkAddNode_Presized(b *testing.B) {
	ids := make([]string, 512)
	for i := range ids {
		ids[i] = fmt.Sprintf("u%d", i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		am := matrix.NewAdjacencyMatrix(core.WithCapacity(len(ids)))
		for _, id := range ids {
			_ = am.AddNode(id)
		}
	}
}
