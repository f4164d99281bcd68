package tracks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsExcluded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		class ObjectClass
		want  bool
	}{
		{Ball, true},
		{Referees, true},
		{Players, false},
		{Goalkeepers, false},
		{ObjectClass("linesmen"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			assert.Equal(t, tt.want, IsExcluded(tt.class))
		})
	}
}

func TestPositionDistanceTo(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 5.0, Position{0, 0}.DistanceTo(Position{3, 4}), 1e-12)
	assert.Equal(t, 0.0, Position{1, 1}.DistanceTo(Position{1, 1}))
}

func TestBBoxFootPosition(t *testing.T) {
	t.Parallel()

	x, y := BBox{10, 20, 30, 60}.FootPosition()
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 60.0, y)
}

func TestRecordSetKinematics(t *testing.T) {
	t.Parallel()

	r := &Record{}
	assert.False(t, r.HasSpeed())

	r.SetKinematics(12.5, 40)
	require.True(t, r.HasSpeed())
	assert.Equal(t, 12.5, *r.Speed)
	assert.Equal(t, 40.0, *r.Distance)

	var nilRec *Record
	assert.False(t, nilRec.HasSpeed())
}

func TestFrameTrackIDs(t *testing.T) {
	t.Parallel()

	f := Frame{9: {}, 3: {}, 5: nil}
	assert.Equal(t, []int{3, 9}, f.TrackIDs())

	_, ok := f.Get(5)
	assert.False(t, ok, "nil record counts as absent")
	_, ok = f.Get(9)
	assert.True(t, ok)
}

func TestStorePutAndLookup(t *testing.T) {
	t.Parallel()

	s := make(Store)
	s.Put(Players, 3, 7, &Record{Team: 2})

	require.Equal(t, 4, s.FrameCount(Players))
	rec, ok := s.Lookup(Players, 3, 7)
	require.True(t, ok)
	assert.Equal(t, 2, rec.Team)

	_, ok = s.Lookup(Players, 0, 7)
	assert.False(t, ok)
	_, ok = s.Lookup(Players, 10, 7)
	assert.False(t, ok)
	_, ok = s.Lookup(Ball, 0, 7)
	assert.False(t, ok)
}

func TestStorePadAndClasses(t *testing.T) {
	t.Parallel()

	s := NewStore(2, Players, Ball)
	s.Put(Referees, 4, 1, &Record{})
	s.Pad(s.MaxFrameCount())

	assert.Equal(t, []ObjectClass{Ball, Players, Referees}, s.Classes())
	for _, c := range s.Classes() {
		assert.Equal(t, 5, s.FrameCount(c), "class %s", c)
	}
}
