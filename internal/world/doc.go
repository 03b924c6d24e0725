// Package world owns the set of simulated bodies and advances them in
// discrete steps.
//
// Each [World.Step] runs the same pipeline:
//
//  1. reset every body's net force
//  2. apply gravity and any registered custom force to positive-mass bodies
//  3. integrate every body (semi-implicit Euler)
//  4. test every pair i<j in insertion order and resolve overlapping pairs
//
// # Thread Safety
//
// A World is safe for concurrent use. Every method runs under a single
// mutex, so a reader never observes a World mid-step. Bodies handed out by
// [World.Object] and [World.Objects] are clones; mutate through the World.
package world
