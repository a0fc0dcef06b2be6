package vpath

import (
	"fmt"
	"math"
)

// Size is a width and height pair. Rounded rectangles use it for the
// horizontal and vertical radius of a corner.
type Size struct {
	Width  float64
	Height float64
}

// Sz returns the size w×h.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

func (sz Size) String() string {
	return fmt.Sprintf("%g×%g", sz.Width, sz.Height)
}

func (sz Size) AsVec2() Vec2 {
	return Vec2{X: sz.Width, Y: sz.Height}
}

func (sz Size) MaxSide() float64 {
	return max(sz.Width, sz.Height)
}

func (sz Size) MinSide() float64 {
	return min(sz.Width, sz.Height)
}

// IsZero reports whether either side is zero. A corner with a zero side
// is square.
func (sz Size) IsZero() bool {
	return sz.Width == 0 || sz.Height == 0
}

// Swap exchanges width and height.
func (sz Size) Swap() Size {
	return Size{Width: sz.Height, Height: sz.Width}
}

// Scale multiplies sz by f.
func (sz Size) Scale(f float64) Size {
	return Size{Width: sz.Width * f, Height: sz.Height * f}
}

// Dominates reports whether sz is at least as large as o in both
// dimensions.
func (sz Size) Dominates(o Size) bool {
	return sz.Width >= o.Width && sz.Height >= o.Height
}

// IsNaN reports whether at least one of width and height is NaN.
func (sz Size) IsNaN() bool {
	return math.IsNaN(sz.Width) || math.IsNaN(sz.Height)
}
