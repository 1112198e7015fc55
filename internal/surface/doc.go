// Package surface owns the lifecycle of a drawing surface: sizing it for the
// display's pixel ratio, tracking the pointer, and driving the per-frame
// step and draw until it is torn down.
//
// Hosts (a raylib window, an ebiten game, a terminal program, a headless
// exporter) implement Host and Canvas. Most of them embed FrameQueue and
// Events rather than scheduling frames and dispatching input themselves.
package surface
