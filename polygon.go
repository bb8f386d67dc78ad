package scatter

import "math"

// satEpsilon is added to the minimal overlap so that moving one polygon by
// Overlap along Axis separates the two shapes.
const satEpsilon = 0.0001

// Polygon is a convex polygon stored as a center plus center-relative
// vertices. Polygons are derived values: they are recomputed from a scatter's
// state or the stage bounds whenever needed and never owned by either.
type Polygon struct {
	Center Vec2
	Points []Vec2
}

// Intersection describes the minimal translation that separates two
// intersecting polygons. Axis is a unit vector.
type Intersection struct {
	Overlap float64
	Axis    Vec2
}

// NewPolygon builds a polygon from absolute points. The center is the
// midpoint of the points' bounding box.
func NewPolygon(points []Vec2) *Polygon {
	if len(points) == 0 {
		return &Polygon{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	c := Vec2{(minX + maxX) / 2, (minY + maxY) / 2}
	rel := make([]Vec2, len(points))
	for i, p := range points {
		rel[i] = p.Sub(c)
	}
	return &Polygon{Center: c, Points: rel}
}

// Rotate rotates the vertices around the center in place.
func (p *Polygon) Rotate(angle float64) {
	for i, v := range p.Points {
		p.Points[i] = v.Rotate(angle)
	}
}

// Absolute returns the vertices in absolute coordinates.
func (p *Polygon) Absolute() []Vec2 {
	out := make([]Vec2, len(p.Points))
	for i, v := range p.Points {
		out[i] = v.Add(p.Center)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the polygon.
func (p *Polygon) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{X: p.Center.X, Y: p.Center.Y}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range p.Points {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return Rect{
		X: p.Center.X + minX, Y: p.Center.Y + minY,
		Width: maxX - minX, Height: maxY - minY,
	}
}

// Contains reports whether pt lies inside the polygon using the ray-casting
// parity test.
func (p *Polygon) Contains(pt Vec2) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	x, y := pt.X-p.Center.X, pt.Y-p.Center.Y
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := p.Points[i].X, p.Points[i].Y
		xj, yj := p.Points[j].X, p.Points[j].Y
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// project returns the interval covered by the polygon on axis, in absolute
// coordinates.
func (p *Polygon) project(axis Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range p.Points {
		d := v.Add(p.Center).Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// IntersectsWith tests p against other with the separating axis theorem.
// It returns false when some edge normal of either polygon separates the two.
// Otherwise the returned Intersection holds the axis of minimal overlap and
// the overlap distance plus a small epsilon.
func (p *Polygon) IntersectsWith(other *Polygon) (Intersection, bool) {
	if len(p.Points) < 2 || len(other.Points) < 2 {
		return Intersection{}, false
	}
	best := Intersection{Overlap: math.Inf(1)}
	for _, poly := range [2]*Polygon{p, other} {
		n := len(poly.Points)
		for i := 0; i < n; i++ {
			edge := poly.Points[(i+1)%n].Sub(poly.Points[i])
			axis := edge.Perp().Normalize()
			if axis.IsZero() {
				continue
			}
			min1, max1 := p.project(axis)
			min2, max2 := other.project(axis)
			if max1 < min2 || max2 < min1 {
				return Intersection{}, false
			}
			overlap := math.Min(max1, max2) - math.Max(min1, min2)
			if overlap < best.Overlap {
				best.Overlap = overlap
				best.Axis = axis
			}
		}
	}
	if math.IsInf(best.Overlap, 1) {
		return Intersection{}, false
	}
	best.Overlap += satEpsilon
	return best, true
}
