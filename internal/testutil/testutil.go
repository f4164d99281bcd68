// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers and track-store fixtures so
// the kinematics, overlay and summary tests build their inputs the same way.
package testutil

import "github.com/banshee-data/pitch.report/internal/tracks"

// Pos returns a pointer to a ground-plane position.
func Pos(x, y float64) *tracks.Position {
	return &tracks.Position{x, y}
}

// DefaultBBox is the box given to records built without an explicit one.
var DefaultBBox = tracks.BBox{100, 100, 140, 200}

// StoreBuilder assembles track stores for tests.
type StoreBuilder struct {
	store tracks.Store
}

// NewStoreBuilder starts a store with frameCount empty frames per class.
func NewStoreBuilder(frameCount int, classes ...tracks.ObjectClass) *StoreBuilder {
	return &StoreBuilder{store: tracks.NewStore(frameCount, classes...)}
}

// At places trackID of class at frame with the given ground-plane position
// (nil for "no position") and DefaultBBox.
func (b *StoreBuilder) At(class tracks.ObjectClass, frame, trackID int, pos *tracks.Position) *StoreBuilder {
	return b.Record(class, frame, trackID, &tracks.Record{BBox: DefaultBBox, PositionTransformed: pos})
}

// Record places an arbitrary record.
func (b *StoreBuilder) Record(class tracks.ObjectClass, frame, trackID int, rec *tracks.Record) *StoreBuilder {
	b.store.Put(class, frame, trackID, rec)
	return b
}

// Linear places trackID on every frame in [from, to] moving from origin by
// step metres per frame along both axes.
func (b *StoreBuilder) Linear(class tracks.ObjectClass, trackID, from, to int, origin, step tracks.Position) *StoreBuilder {
	for f := from; f <= to; f++ {
		n := float64(f - from)
		b.At(class, f, trackID, Pos(origin.X()+n*step.X(), origin.Y()+n*step.Y()))
	}
	return b
}

// Team sets the team of trackID on every frame of class where it appears.
func (b *StoreBuilder) Team(class tracks.ObjectClass, trackID, team int) *StoreBuilder {
	for _, frame := range b.store[class] {
		if rec, ok := frame.Get(trackID); ok {
			rec.Team = team
		}
	}
	return b
}

// Build returns the store with every class padded to the same frame count.
func (b *StoreBuilder) Build() tracks.Store {
	b.store.Pad(b.store.MaxFrameCount())
	return b.store
}
