// Package sim drives the two handles of an air-hockey table.
//
//   - [Simulation]: both handles, the pointer entry points and [Simulation.Step]
//   - [Runner]: headless loop feeding a [Driver], recording [Frame]s and metrics
//   - [Ensemble]: several seeded runs in parallel
//
// # Example
//
//	s := sim.New(arena.Default(), handle.DefaultTuning())
//	s.OnPointerDown(handle.One, 1, s.Handle(handle.One).Position())
//	s.OnPointerMove(1, geom.V(20, 200))
//	s.Step(16.6)
//
// # Thread Safety
//
// A Simulation is NOT safe for concurrent use. Ticks and pointer events
// must come from the same goroutine; [Ensemble] gives every run its own
// Simulation.
package sim
