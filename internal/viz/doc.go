// Package viz renders the scene in a terminal.
//
// The package implements a surface host on top of Bubble Tea:
//
//   - [Model]: the terminal host, driving frames from tea.Tick and forwarding
//     window size and mouse motion to the surface manager
//   - [Canvas]: a Braille dot canvas with one color per cell
//   - [BrailleSurface]: adapts [Canvas] to the drawing interface
//   - Theme selection with 5 built-in color schemes
//
// Each terminal cell holds 2x4 dots and each dot covers Scale x Scale
// logical units, so the scene sees a surface of ordinary proportions and a
// pixel ratio of 1/Scale.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	T     - Cycle color themes
//	S     - Toggle the stats panel
//	Q     - Quit
package viz
