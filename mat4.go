package backdrop

import "math"

// Mat4 is a 4×4 matrix stored row-major. Only affine transforms are built
// with it; the projective divide is done by the camera.
type Mat4 [16]float64

// Mat4Identity returns the identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// Mat4Translation returns a translation by t.
func Mat4Translation(t Vec3) Mat4 {
	return Mat4{
		1, 0, 0, t.X,
		0, 1, 0, t.Y,
		0, 0, 1, t.Z,
		0, 0, 0, 1,
	}
}

// Mat4Euler returns the rotation for Euler angles applied in XYZ order
// (the matrix is Rx·Ry·Rz).
func Mat4Euler(r Vec3) Mat4 {
	a, b := math.Cos(r.X), math.Sin(r.X)
	c, d := math.Cos(r.Y), math.Sin(r.Y)
	e, f := math.Cos(r.Z), math.Sin(r.Z)
	ae, af, be, bf := a*e, a*f, b*e, b*f
	return Mat4{
		c * e, -c * f, d, 0,
		af + be*d, ae - bf*d, -b * c, 0,
		bf - ae*d, be + af*d, a * c, 0,
		0, 0, 0, 1,
	}
}

// MulPoint transforms a 3D point (w=1) by the matrix.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
	}
}

// IsIdentity checks if the matrix is approximately identity.
func (m Mat4) IsIdentity() bool {
	id := Mat4Identity()
	for i := 0; i < 16; i++ {
		d := m[i] - id[i]
		if d > 1e-8 || d < -1e-8 {
			return false
		}
	}
	return true
}
