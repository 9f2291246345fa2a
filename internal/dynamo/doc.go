// Package dynamo provides the shared primitives of the bounce simulation.
//
// The package holds the small value types every other package speaks:
//
//   - [Vec2]: 2D vector in world units (pixels)
//   - [Bounds]: the rectangle bodies are contained in
//   - [BodyID]: stable identity of a spawned body
//
// and the sentinel errors returned by configuration, spawning and state
// validation. See [SimulationError] for errors tied to a frame.
package dynamo
