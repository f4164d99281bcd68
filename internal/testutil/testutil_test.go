package testutil

import (
	"testing"

	"github.com/banshee-data/pitch.report/internal/tracks"
)

func TestStoreBuilder(t *testing.T) {
	store := NewStoreBuilder(3, tracks.Players, tracks.Ball).
		Linear(tracks.Players, 7, 0, 5, tracks.Position{0, 0}, tracks.Position{1, 0}).
		At(tracks.Players, 2, 9, nil).
		Team(tracks.Players, 7, 2).
		Build()

	if got := store.FrameCount(tracks.Players); got != 6 {
		t.Fatalf("players frame count = %d, want 6", got)
	}
	if got := store.FrameCount(tracks.Ball); got != 6 {
		t.Errorf("ball frame count = %d, want 6 after padding", got)
	}

	rec, ok := store.Lookup(tracks.Players, 5, 7)
	if !ok {
		t.Fatal("track 7 missing at frame 5")
	}
	if rec.PositionTransformed == nil || rec.PositionTransformed.X() != 5 {
		t.Errorf("frame 5 position = %v, want x=5", rec.PositionTransformed)
	}
	if rec.Team != 2 {
		t.Errorf("team = %d, want 2", rec.Team)
	}

	rec, ok = store.Lookup(tracks.Players, 2, 9)
	if !ok || rec.PositionTransformed != nil {
		t.Errorf("track 9 should be present without a position: %+v", rec)
	}
}
