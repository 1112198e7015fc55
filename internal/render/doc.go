// Package render paints a scene onto a [Surface].
//
// A frame is a full repaint in a fixed order: clear, connections with
// their traveling pulses, particle glows and cores, then the two waveform
// layers. The renderer only reads the scene. Every coordinate handed to a
// Surface is in logical units; surfaces backed by denser pixel buffers
// apply their own scale.
package render
