// Package kinematics derives speed and cumulative distance for tracked
// entities from their ground-plane positions.
//
// The Estimator samples each track at the two endpoints of fixed-size frame
// windows, converts the displacement into a km/h speed, accumulates distance
// per (class, track ID) and writes the results back into the track store.
// Key types: Estimator, Config, Accumulator.
//
// An Estimator holds the accumulators of exactly one analysis run. Build a
// new one for every run; it is not safe for concurrent use.
package kinematics
