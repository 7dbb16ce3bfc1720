package gosheet

import (
	"bytes"
	"fmt"
	"testing"
)

// BenchmarkLargeCellPopulation measures plain literal Set calls against a
// single Sheet at a realistic cell-count scale.
func BenchmarkLargeCellPopulation(b *testing.B) {
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		s := NewSheet()
		for row := 1; row <= 100; row++ {
			for col := 1; col <= 100; col++ {
				s.Set(Pos{Row: row, Col: col}, fmt.Sprintf("%d", row*col))
			}
		}
	}
}

// BenchmarkFormulaDependencyChain measures get() through a long linear
// reference chain, exercising the cycle precheck's DFS depth.
func BenchmarkFormulaDependencyChain(b *testing.B) {
	s := NewSheet()
	s.Set(Pos{Row: 1, Col: 1}, "1")
	for row := 2; row <= 500; row++ {
		s.Set(Pos{Row: row, Col: 1}, fmt.Sprintf("=%s+1", Pos{Row: row - 1, Col: 1}))
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		s.Get(Pos{Row: 500, Col: 1})
	}
}

// BenchmarkWideDependencyFanOut measures get() on a cell whose formula
// directly sums-by-addition a wide row of independent literals.
func BenchmarkWideDependencyFanOut(b *testing.B) {
	s := NewSheet()
	formula := "=A1"
	for col := 2; col <= 50; col++ {
		s.Set(Pos{Row: 1, Col: col}, fmt.Sprintf("%d", col))
		formula += fmt.Sprintf("+%s", Pos{Row: 1, Col: col})
	}
	s.Set(Pos{Row: 1, Col: 1}, "1")
	s.Set(Pos{Row: 2, Col: 1}, formula)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		s.Get(Pos{Row: 2, Col: 1})
	}
}

// BenchmarkSaveLoadRoundTrip exercises the byte-stream save/load path on a
// moderately populated sheet.
func BenchmarkSaveLoadRoundTrip(b *testing.B) {
	s := NewSheet()
	for row := 1; row <= 200; row++ {
		s.Set(Pos{Row: row, Col: 1}, fmt.Sprintf("%d", row))
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		var buf bytes.Buffer
		s.Save(&buf)
		fresh := NewSheet()
		fresh.Load(&buf)
	}
}
