package scatter

import (
	"math"
	"testing"
)

// step records prev as the baseline of each contact and cur as its current
// position, like one mapper update.
func step(in *Interaction, prev, cur PointMap) {
	for id, p := range prev {
		in.Update(id, p)
	}
	in.UpdatePrevious()
	for id, p := range cur {
		in.Update(id, p)
	}
}

func TestDeltaNoContacts(t *testing.T) {
	in := NewInteraction(newTestClock())
	if d := in.Delta(); d != nil {
		t.Errorf("Delta() = %+v, want nil", d)
	}
}

func TestDeltaSingleContact(t *testing.T) {
	in := NewInteraction(newTestClock())
	step(in, PointMap{"1": {10, 10}}, PointMap{"1": {15, 7}})
	d := in.Delta()
	if d == nil {
		t.Fatal("Delta() = nil")
	}
	assertVec(t, "Translate", d.Translate, Vec2{5, -3})
	assertNear(t, "Zoom", d.Zoom, 1)
	assertNear(t, "Rotate", d.Rotate, 0)
	assertVec(t, "About", d.About, Vec2{15, 7})
	if !d.IsTranslation() {
		t.Error("IsTranslation() = false")
	}
}

func TestDeltaPinchZoom(t *testing.T) {
	in := NewInteraction(newTestClock())
	step(in,
		PointMap{"1": {-50, 0}, "2": {50, 0}},
		PointMap{"1": {-100, 0}, "2": {100, 0}},
	)
	d := in.Delta()
	assertNear(t, "Zoom", d.Zoom, 2)
	assertNear(t, "Rotate", d.Rotate, 0)
	assertVec(t, "About", d.About, Vec2{0, 0})
	assertVec(t, "Translate", d.Translate, Vec2{0, 0})
}

func TestDeltaTwoFingerRotate(t *testing.T) {
	in := NewInteraction(newTestClock())
	step(in,
		PointMap{"1": {0, 0}, "2": {10, 0}},
		PointMap{"1": {5, -5}, "2": {5, 5}},
	)
	d := in.Delta()
	assertNear(t, "Zoom", d.Zoom, 1)
	// The pair turned from pointing left (2→1) to pointing up.
	assertNear(t, "Rotate", d.Rotate, math.Pi/2)
	assertVec(t, "About", d.About, Vec2{5, 0})
	assertVec(t, "Translate", d.Translate, Vec2{0, 0})
}

func TestDeltaIgnoresContactsWithoutBaseline(t *testing.T) {
	in := NewInteraction(newTestClock())
	step(in, PointMap{"1": {0, 0}}, PointMap{"1": {4, 0}})
	// Stop removes the baseline of a released contact.
	in.Update("2", Vec2{100, 100})
	in.Stop("2", Vec2{100, 100})
	d := in.Delta()
	assertVec(t, "Translate", d.Translate, Vec2{4, 0})
	if !d.IsTranslation() {
		t.Error("IsTranslation() = false")
	}
}

func TestDeltaDegenerateDistance(t *testing.T) {
	in := NewInteraction(newTestClock())
	step(in,
		PointMap{"1": {5, 5}, "2": {5, 5}},
		PointMap{"1": {8, 5}, "2": {12, 5}},
	)
	d := in.Delta()
	assertNear(t, "Zoom", d.Zoom, 1)
	assertNear(t, "Rotate", d.Rotate, 0)
	assertVec(t, "Translate", d.Translate, Vec2{5, 0})
}

func TestDeltaFarthestPair(t *testing.T) {
	in := NewInteraction(newTestClock())
	step(in,
		PointMap{"1": {0, 0}, "2": {100, 0}, "3": {50, 1}},
		PointMap{"1": {0, 0}, "2": {200, 0}, "3": {50, 1}},
	)
	d := in.Delta()
	assertNear(t, "Zoom", d.Zoom, 2)
	assertVec(t, "About", d.About, Vec2{100, 0})
	assertVec(t, "Translate", d.Translate, Vec2{50, 0})
}

func TestPairDeltaReproducesPair(t *testing.T) {
	p1, p2 := Vec2{10, 20}, Vec2{40, 60}
	c1, c2 := Vec2{-5, 3}, Vec2{30, 90}
	d := pairDelta(c1, c2, p1, p2)

	// Applying the similarity about the new midpoint maps the previous pair
	// onto the current one.
	apply := func(p Vec2) Vec2 {
		moved := p.Add(d.Translate)
		return d.About.Add(moved.Sub(d.About).Rotate(d.Rotate).Scale(d.Zoom))
	}
	if got := apply(p1); !approxEqual(got.X, c1.X, 1e-9) || !approxEqual(got.Y, c1.Y, 1e-9) {
		t.Errorf("apply(p1) = %v, want %v", got, c1)
	}
	if got := apply(p2); !approxEqual(got.X, c2.X, 1e-9) || !approxEqual(got.Y, c2.Y, 1e-9) {
		t.Errorf("apply(p2) = %v, want %v", got, c2)
	}
}
