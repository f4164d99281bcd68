package trackstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/pitch.report/internal/monitoring"
	"github.com/banshee-data/pitch.report/internal/tracks"
)

var logf = monitoring.Component("trackstore")

// Schema is the observation table the tracking stage writes. A NULL pos_x
// or pos_y means the track has no transformed position in that frame; a
// NULL team means no team was assigned.
const Schema = `
CREATE TABLE IF NOT EXISTS track_observations (
	object_class TEXT    NOT NULL,
	frame_index  INTEGER NOT NULL,
	track_id     INTEGER NOT NULL,
	bbox_x1      REAL    NOT NULL,
	bbox_y1      REAL    NOT NULL,
	bbox_x2      REAL    NOT NULL,
	bbox_y2      REAL    NOT NULL,
	pos_x        REAL,
	pos_y        REAL,
	team         INTEGER,
	PRIMARY KEY (object_class, frame_index, track_id)
);
`

// OpenSQLite opens the database at path for reading observations.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// PRAGMAs are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA query_only=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return db, nil
}

// LoadSQLite reads every observation into a store. frameCount is the
// length of the source video: every class is extended to it, and an
// observation at or beyond it is an error. With frameCount 0 each class
// ends at its highest observed frame index.
func LoadSQLite(ctx context.Context, db *sql.DB, frameCount int) (tracks.Store, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT object_class, frame_index, track_id,
		       bbox_x1, bbox_y1, bbox_x2, bbox_y2,
		       pos_x, pos_y, team
		FROM track_observations
		ORDER BY object_class, frame_index, track_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	store := make(tracks.Store)
	count := 0
	for rows.Next() {
		var (
			class      string
			frame, id  int
			rec        tracks.Record
			posX, posY sql.NullFloat64
			team       sql.NullInt64
		)
		if err := rows.Scan(&class, &frame, &id,
			&rec.BBox[0], &rec.BBox[1], &rec.BBox[2], &rec.BBox[3],
			&posX, &posY, &team); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		if frame < 0 || (frameCount > 0 && frame >= frameCount) {
			return nil, fmt.Errorf("frame_index %d out of range for %s track %d", frame, class, id)
		}
		if posX.Valid && posY.Valid {
			rec.PositionTransformed = &tracks.Position{posX.Float64, posY.Float64}
		}
		if team.Valid {
			rec.Team = int(team.Int64)
		}
		store.Put(tracks.ObjectClass(class), frame, id, &rec)
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read observations: %w", err)
	}

	if frameCount > 0 {
		store.Pad(frameCount)
	}
	logf("loaded %d observations across %d classes, %d frames",
		count, len(store), store.MaxFrameCount())
	return store, nil
}
