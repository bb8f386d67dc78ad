package scatter

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeObjectTransform computes the matrix mapping object-local points
// (unscaled, origin at the object's top-left) into stage space.
// Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-Pivot) -> Scale -> Rotate -> Translate(X, Y)
func computeObjectTransform(st State, pivot Vec2) [6]float64 {
	sin, cos := math.Sincos(st.Rotation)
	s := st.Scale

	a := cos * s
	b := sin * s
	c := -sin * s
	d := cos * s
	tx := st.X - (a*pivot.X + c*pivot.Y)
	ty := st.Y - (b*pivot.X + d*pivot.Y)
	return [6]float64{a, b, c, d, tx, ty}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// --- Coordinate conversion ---

// StageToLocal converts a stage-space point to the object's local,
// unscaled coordinate space.
func (s *Scatter) StageToLocal(p Vec2) Vec2 {
	return transformPoint(invertAffine(s.Matrix()), p)
}

// LocalToStage converts an object-local point to stage space.
func (s *Scatter) LocalToStage(p Vec2) Vec2 {
	return transformPoint(s.Matrix(), p)
}

// Matrix returns the object's local-to-stage affine matrix.
func (s *Scatter) Matrix() [6]float64 {
	return computeObjectTransform(s.state, s.pivot)
}
