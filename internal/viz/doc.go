// Package viz provides the live terminal viewer for a World.
//
// [Model] is a Bubble Tea program that draws bodies on a braille [Canvas]
// and plots kinetic energy with asciigraph. The World's running flag gates
// stepping; the viewer advances one fixed step per tick while it is set.
//
// # Key Bindings
//
//	Space - Start/Pause the world
//	N     - Single step
//	R     - Reload the initial scene
//	?     - Toggle help
//	Q     - Quit
package viz
