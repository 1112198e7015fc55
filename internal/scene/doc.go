// Package scene holds the data model of the hero animation.
//
// A [Scene] is the whole simulated population: three tiers of [Particle]
// values, a fixed set of [WavePoint] samples for the decorative waveform,
// and the simulation clock. Scenes are built once by [Populate] the first
// time the drawing surface has a known size and are mutated in place by
// the sim package afterwards.
//
// Coordinates are logical surface units. Pixel density is a rendering
// concern and never leaks into this package.
package scene
