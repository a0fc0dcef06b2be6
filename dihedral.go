package vpath

import "fmt"

// Dihedral is one of the eight symmetries of the square: the four
// rotations by multiples of 90° and the four rotations preceded by a
// horizontal flip (x → −x).
type Dihedral uint8

const (
	Normal Dihedral = iota
	Rotate90
	Rotate180
	Rotate270
	Flipped
	Flipped90
	Flipped180
	Flipped270
)

var dihedralNames = [...]string{
	Normal:     "normal",
	Rotate90:   "90",
	Rotate180:  "180",
	Rotate270:  "270",
	Flipped:    "flipped",
	Flipped90:  "flipped-90",
	Flipped180: "flipped-180",
	Flipped270: "flipped-270",
}

func (d Dihedral) String() string {
	if int(d) < len(dihedralNames) {
		return dihedralNames[d]
	}
	return fmt.Sprintf("Dihedral(%d)", uint8(d))
}

// dihedralMatrices holds xx, xy, yx, yy for every symmetry, where
// x' = xx·x + xy·y and y' = yx·x + yy·y.
var dihedralMatrices = [8][4]float64{
	Normal:     {1, 0, 0, 1},
	Rotate90:   {0, -1, 1, 0},
	Rotate180:  {-1, 0, 0, -1},
	Rotate270:  {0, 1, -1, 0},
	Flipped:    {-1, 0, 0, 1},
	Flipped90:  {0, -1, -1, 0},
	Flipped180: {1, 0, 0, -1},
	Flipped270: {0, 1, 1, 0},
}

// Mat2 returns the 2×2 matrix of the symmetry.
func (d Dihedral) Mat2() (xx, xy, yx, yy float64) {
	m := dihedralMatrices[d&7]
	return m[0], m[1], m[2], m[3]
}

func dihedralFromMat2(m [4]float64) Dihedral {
	for i, o := range dihedralMatrices {
		if o == m {
			return Dihedral(i)
		}
	}
	panic(fmt.Sprintf("matrix %v is not a dihedral symmetry", m))
}

// Combine returns the symmetry that applies d first and then o.
func (d Dihedral) Combine(o Dihedral) Dihedral {
	a := dihedralMatrices[d&7]
	b := dihedralMatrices[o&7]
	return dihedralFromMat2([4]float64{
		b[0]*a[0] + b[1]*a[2],
		b[0]*a[1] + b[1]*a[3],
		b[2]*a[0] + b[3]*a[2],
		b[2]*a[1] + b[3]*a[3],
	})
}

// Invert returns the symmetry that undoes d. The matrices are
// orthogonal, so the inverse is the transpose.
func (d Dihedral) Invert() Dihedral {
	m := dihedralMatrices[d&7]
	return dihedralFromMat2([4]float64{m[0], m[2], m[1], m[3]})
}

// SwapsXY reports whether the symmetry exchanges the horizontal and
// vertical axes.
func (d Dihedral) SwapsXY() bool {
	return d&1 == 1
}

// Apply transforms a point by the symmetry.
func (d Dihedral) Apply(pt Point) Point {
	m := dihedralMatrices[d&7]
	return Point{
		X: m[0]*pt.X + m[1]*pt.Y,
		Y: m[2]*pt.X + m[3]*pt.Y,
	}
}

// RectDihedral transforms r by the symmetry and normalizes the result to
// non-negative width and height. The result is exact.
func RectDihedral(r Rect, d Dihedral) Rect {
	return NewRectFromPoints(d.Apply(Pt(r.X0, r.Y0)), d.Apply(Pt(r.X1, r.Y1)))
}
