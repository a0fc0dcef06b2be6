// Package vpath provides immutable 2D vector paths and the geometry needed
// to construct, query and combine them.
//
// # Paths and contours
//
// A [Path] is a sequence of [Contour] values. A contour starts at a point
// and continues with a connected sequence of segments: lines, quadratic
// and cubic Béziers, and conics (rational quadratic Béziers with a
// weight). Closed contours end with a close segment leading back to the
// start point.
//
// Paths are never modified after they have been built. They are created
// with a [Builder], which tracks a current point and turns drawing
// commands into segments. It reduces degenerate curves to lines, so
// that every segment of a path has a well-defined direction. Shapes such
// as rectangles, rounded rectangles and circles are added as complete
// contours, with [Builder.AddRect], [Builder.AddRoundedRect] and
// [Builder.AddCircle].
//
// # Text form
//
// Paths have a compact text form based on SVG path data, produced by
// [Path.String] and consumed by [Parse]. In addition to the SVG commands,
// the text form has the O command for conics, which takes a control
// point, an end point and a weight:
//
//	M 10 10 O 20 10, 20 20, 0.7071067811865476 Z
//
// Printing a path and parsing the result yields the same path.
//
// # Queries
//
// A [PathPoint] identifies a position on a path by contour, segment and
// parameter. Path points are found with [Path.ClosestPoint],
// [Path.StartPoint] and [Path.EndPoint] and answer questions about their
// position, tangent and curvature. [Path.InFill] tests points against
// the area a path covers, using a [FillRule]. A [Measure] maps distances
// along a path to path points.
//
// # Boolean operations
//
// [Union], [Intersection], [Difference] and [SymmetricDifference] combine
// the areas of two paths, and [Simplify] removes overlaps from a single
// path. They compute all intersections between the paths' segments,
// classify the resulting pieces as boundary or interior and reassemble
// the boundary into new contours. The results are approximations; where
// segments nearly coincide or nearly touch, the outcome depends on
// tolerances.
//
// # Rounded rectangles
//
// [RoundedRect] implements containment and intersection tests for
// rectangles with elliptical corners, as used for clipping. Intersecting
// two rounded rectangles produces another one when possible; when the
// result can't be expressed as a rounded rectangle, this is reported
// instead of approximated.
//
// # Logging
//
// The package is silent by default. [SetLogger] installs a [log/slog]
// logger; boolean operations trace their phases at debug level.
package vpath
