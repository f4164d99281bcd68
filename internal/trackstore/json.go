package trackstore

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/banshee-data/pitch.report/internal/fsutil"
	"github.com/banshee-data/pitch.report/internal/tracks"
)

// LoadJSON decodes a store of the form
//
//	{"players": [{"7": {"bbox": [x1,y1,x2,y2], "position_transformed": [x,y], "team": 1}}, ...], ...}
//
// where each array element is one frame. Null frames become empty frames;
// each class keeps the frame count it was written with.
func LoadJSON(r io.Reader) (tracks.Store, error) {
	var store tracks.Store
	if err := json.NewDecoder(r).Decode(&store); err != nil {
		return nil, fmt.Errorf("failed to decode track store: %w", err)
	}
	if store == nil {
		store = make(tracks.Store)
	}
	normalise(store)
	return store, nil
}

// LoadJSONFile reads and decodes the JSON store at path.
func LoadJSONFile(fs fsutil.FileSystem, path string) (tracks.Store, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open track store: %w", err)
	}
	defer f.Close()
	return LoadJSON(f)
}

func normalise(store tracks.Store) {
	for _, frames := range store {
		for i, frame := range frames {
			if frame == nil {
				frames[i] = make(tracks.Frame)
			}
		}
	}
}
