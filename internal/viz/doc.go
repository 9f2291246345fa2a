// Package viz draws the world in the terminal.
//
// Drawing goes through [Surface], so the same scene code feeds the braille
// [Canvas] here, the raylib window in package gui and the SVG writer in
// package export. [Model] is the live Bubble Tea program: it owns a world,
// feeds it mouse and key events and steps it on every tick.
//
// # Key Bindings
//
//	Space - Spawn a body at the pointer
//	P     - Pause/Resume
//	X     - Remove the body under the pointer
//	R     - Remove all bodies
//	M     - Toggle ordered/unique pair resolution
//	T     - Cycle color themes
//	Tab   - Select a parameter, Up/Down to tune it
//	?     - Show help overlay
//
// Left mouse drags a body, right mouse pulls one like a slingshot.
package viz
