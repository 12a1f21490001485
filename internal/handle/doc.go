// Package handle models one mallet on the table.
//
// A handle is either Free, obeying free-body physics, or Held by a pointer.
// The held arm carries the pointer id and the sample buffers used to derive
// a velocity from discrete pointer positions; a free handle has none of
// them, so switching state can never read stale samples.
//
// # Update order
//
// A free handle resolves, in order: wall reflection, integration, the
// opponent contact, de-penetration, the speed limit and friction. A held
// handle only derives its velocity; its position is written by [Handle.MoveTo].
//
// Handles never keep a reference to each other. The caller passes the
// opponent into [Handle.Update] on every tick.
package handle
