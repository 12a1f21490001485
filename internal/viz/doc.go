// Package viz draws the table in the terminal and lets two players drive
// the handles from one keyboard.
//
// The live view is a Bubble Tea model:
//
//   - [Model]: steps the simulation once per frame and renders it
//   - [Canvas]: Braille-based pixel canvas for the table and handles
//   - Theme selection with built-in color schemes
//
// # Key Bindings
//
//	Arrows / Enter - move the bottom cursor, grab or release
//	WASD / Space   - move the top cursor, grab or release
//	P              - Pause/Resume simulation
//	R              - Reset handles and cursors
//	T              - Cycle color themes
//	?              - Show help overlay
//
// Each cursor follows its key-driven target through a critically damped
// spring, so a held handle sees a smooth pointer path rather than jumps.
package viz
