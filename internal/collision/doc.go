// Package collision implements the contact tests and the contact response
// used by the handle update.
//
// Detection is split into [CircleToBounds], which classifies a circle
// against the walls of a rectangle, and [CircleToCircle]. Response is the
// fully elastic two-body formula in [FullyElastic]; a held handle takes
// part in it with [ImmovableMass] so its partner bounces as off a wall.
//
// # Tie-breaks
//
// A circle past two walls at once reports only one side, checked in the
// fixed order left, top, right, bottom. Two bodies with coincident centers
// have no collision normal; [FullyElastic] leaves the velocity unchanged.
package collision
