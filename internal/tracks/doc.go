// Package tracks owns the frame-indexed track store shared by the analysis
// stages.
//
// The store is produced upstream (detection, tracking, camera-motion and
// perspective correction) and consumed here by reference. Key types: Store,
// Frame, Record.
//
// Write scope: the kinematics stage may set Record.Speed and
// Record.Distance. No stage in this module adds, removes or reorders frames
// or records.
package tracks
