// Package trackstore loads track stores written by the upstream tracking
// stage.
//
// Two sources are supported: a JSON document keyed by object class, and a
// SQLite database holding one row per (class, frame, track) observation.
// A class's frame count is what the engine windows over, so the JSON loader
// keeps each class at its written length and the SQLite loader takes the
// video length from its caller. No SQL lives outside this package.
package trackstore
