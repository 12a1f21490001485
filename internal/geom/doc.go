// Package geom provides the planar primitives shared by the simulation.
//
//   - [Vec2]: immutable 2D vector used for every position, velocity and displacement
//   - [Circle]: a center and a radius
//   - [Rect]: axis-aligned rectangle backed by [r2.Rect]
//
// All operations return new values. Degenerate inputs (normalizing or
// dividing a zero vector) resolve to [Zero] rather than NaN.
package geom
