// Package pipeline drives the per-row resolution loop: read a PSM row,
// normalize inline deltas, resolve modifications, compute the mass, and hand
// the finished result to a visitor.
//
// The loop is strictly synchronous. Symbol allocation order inside the
// modification registry is an observable part of output determinism, so rows
// are processed one at a time, first to last.
package pipeline
