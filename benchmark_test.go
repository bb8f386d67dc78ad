package scatter

import "testing"

// setupBenchStage creates a Stage with n objects laid out in a grid.
func setupBenchStage(n int) (*Stage, *FrameClock) {
	st, clock := newTestStage()
	for i := 0; i < n; i++ {
		x := 20 + float64(i%40)*19
		y := 20 + float64(i/40)*19
		MustNewScatter(st, testConfig(x, y, 16, 16))
	}
	return st, clock
}

// --- Geometry Benchmarks ---

func BenchmarkIntersectsWith(b *testing.B) {
	a := square(0, 0, 50)
	a.Rotate(0.3)
	c := Rect{Width: 800, Height: 600}.Polygon()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.IntersectsWith(c)
	}
}

func BenchmarkDelta_TwoContacts(b *testing.B) {
	in := NewInteraction(newTestClock())
	in.Update("1", Vec2{0, 0})
	in.Update("2", Vec2{100, 0})
	in.UpdatePrevious()
	in.Update("1", Vec2{-5, 3})
	in.Update("2", Vec2{110, -2})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		in.Delta()
	}
}

// --- Stage Benchmarks ---

func BenchmarkFindTarget_500Objects(b *testing.B) {
	st, _ := setupBenchStage(500)
	p := Vec2{400, 150}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.FindTarget(nil, p, p)
	}
}

func BenchmarkThrow_100Objects(b *testing.B) {
	st, clock := setupBenchStage(100)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, o := range st.Objects() {
			if !o.IsThrowing() {
				o.startObserving()
				o.velocities.add(VelocitySample{DT: 16, DX: 8, DY: 5})
				o.startThrow()
			}
		}
		clock.Tick()
		st.Update()
	}
}
