package tracks

import (
	"math"
	"sort"
)

// ObjectClass names a category of tracked entity.
type ObjectClass string

const (
	Players     ObjectClass = "players"
	Goalkeepers ObjectClass = "goalkeepers"
	Referees    ObjectClass = "referees"
	Ball        ObjectClass = "ball"
)

// IsExcluded reports whether the class is left out of kinematic analysis.
// The ball and referees are excluded; every other class, including ones
// this package does not name, is analysed.
func IsExcluded(class ObjectClass) bool {
	return class == Ball || class == Referees
}

// Position is a ground-plane coordinate in metres.
type Position [2]float64

// X returns the first ground-plane coordinate.
func (p Position) X() float64 { return p[0] }

// Y returns the second ground-plane coordinate.
func (p Position) Y() float64 { return p[1] }

// DistanceTo returns the Euclidean distance between p and q.
func (p Position) DistanceTo(q Position) float64 {
	return math.Hypot(q.X()-p.X(), q.Y()-p.Y())
}

// BBox is an image-space box as x1, y1, x2, y2 in pixels.
type BBox [4]float64

// FootPosition returns the bottom-centre of the box.
func (b BBox) FootPosition() (x, y float64) {
	return (b[0] + b[2]) / 2, b[3]
}

// Record holds the per-frame attributes of one track.
type Record struct {
	BBox BBox `json:"bbox"`

	// PositionTransformed is nil when the upstream perspective
	// transform could not place the track on the ground plane.
	PositionTransformed *Position `json:"position_transformed,omitempty"`

	// Team is 0 when no team has been assigned.
	Team int `json:"team,omitempty"`

	// Written by kinematics.Estimator.Annotate.
	Speed    *float64 `json:"speed,omitempty"`    // km/h
	Distance *float64 `json:"distance,omitempty"` // cumulative metres
}

// HasSpeed reports whether both kinematic annotations are present.
func (r *Record) HasSpeed() bool {
	return r != nil && r.Speed != nil && r.Distance != nil
}

// SetKinematics writes the speed and cumulative distance annotations.
func (r *Record) SetKinematics(speedKmh, distanceM float64) {
	r.Speed = &speedKmh
	r.Distance = &distanceM
}

// Frame maps track ID to record for a single frame.
type Frame map[int]*Record

// Get returns the record for trackID, or nil when the track is absent.
func (f Frame) Get(trackID int) (*Record, bool) {
	r, ok := f[trackID]
	if !ok || r == nil {
		return nil, false
	}
	return r, true
}

// TrackIDs returns the IDs present in the frame in ascending order.
func (f Frame) TrackIDs() []int {
	ids := make([]int, 0, len(f))
	for id, r := range f {
		if r != nil {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Store is the track store: object class to frames in processing order.
type Store map[ObjectClass][]Frame

// NewStore returns a store with frameCount empty frames for each class.
func NewStore(frameCount int, classes ...ObjectClass) Store {
	s := make(Store, len(classes))
	for _, c := range classes {
		frames := make([]Frame, frameCount)
		for i := range frames {
			frames[i] = make(Frame)
		}
		s[c] = frames
	}
	return s
}

// Classes returns the classes present in the store, sorted by name.
func (s Store) Classes() []ObjectClass {
	classes := make([]ObjectClass, 0, len(s))
	for c := range s {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return classes
}

// FrameCount returns the number of frames recorded for class.
func (s Store) FrameCount(class ObjectClass) int {
	return len(s[class])
}

// Put stores rec for trackID at frame idx of class. Frames are allocated as
// needed so the class covers at least idx+1 frames.
func (s Store) Put(class ObjectClass, idx, trackID int, rec *Record) {
	frames := s[class]
	for len(frames) <= idx {
		frames = append(frames, make(Frame))
	}
	if frames[idx] == nil {
		frames[idx] = make(Frame)
	}
	frames[idx][trackID] = rec
	s[class] = frames
}

// Lookup returns the record of trackID at frame idx of class.
func (s Store) Lookup(class ObjectClass, idx, trackID int) (*Record, bool) {
	frames := s[class]
	if idx < 0 || idx >= len(frames) {
		return nil, false
	}
	return frames[idx].Get(trackID)
}

// Pad extends every class to at least frameCount frames.
func (s Store) Pad(frameCount int) {
	for c, frames := range s {
		for len(frames) < frameCount {
			frames = append(frames, make(Frame))
		}
		s[c] = frames
	}
}

// MaxFrameCount returns the largest frame count across classes.
func (s Store) MaxFrameCount() int {
	n := 0
	for _, frames := range s {
		if len(frames) > n {
			n = len(frames)
		}
	}
	return n
}
