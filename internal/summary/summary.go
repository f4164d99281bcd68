// Package summary aggregates kinematics accumulators into one row per
// tracked entity and exports them as CSV.
package summary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/pitch.report/internal/config"
	"github.com/banshee-data/pitch.report/internal/fsutil"
	"github.com/banshee-data/pitch.report/internal/kinematics"
	"github.com/banshee-data/pitch.report/internal/monitoring"
	"github.com/banshee-data/pitch.report/internal/tracks"
)

// FileName is the name of the export inside the output directory.
const FileName = "speed_distance_stats.csv"

// ErrNoData is returned by Export when no track has a speed sample.
// Nothing is written in that case.
var ErrNoData = errors.New("no speed and distance data available for export")

// Header lists the exported columns in order.
var Header = []string{
	"player_id",
	"average_speed_kmh",
	"max_speed_kmh",
	"total_distance_m",
	"num_speed_samples",
}

// AccumulatorSource exposes the per-track state of a finished run.
// *kinematics.Estimator satisfies it.
type AccumulatorSource interface {
	Accumulators() map[kinematics.TrackKey]kinematics.Accumulator
}

// Row is the summary of one tracked entity. Class and Team are metadata
// and are not exported.
type Row struct {
	PlayerID        int
	AverageSpeedKmh float64
	MaxSpeedKmh     float64
	TotalDistanceM  float64
	NumSpeedSamples int

	Class tracks.ObjectClass
	Team  int // 0 when unknown
}

// Record formats the row as CSV fields in Header order.
func (r Row) Record() []string {
	return []string{
		strconv.Itoa(r.PlayerID),
		formatFloat(r.AverageSpeedKmh),
		formatFloat(r.MaxSpeedKmh),
		formatFloat(r.TotalDistanceM),
		strconv.Itoa(r.NumSpeedSamples),
	}
}

// formatFloat writes the shortest exact decimal, keeping ".0" on whole
// values so float columns read back as floats.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// BuildRows returns one row per (class, track ID) with at least one speed
// sample, ordered by track ID and then class.
func BuildRows(src AccumulatorSource, store tracks.Store) []Row {
	var rows []Row
	for key, acc := range src.Accumulators() {
		if tracks.IsExcluded(key.Class) || len(acc.SpeedSamples) == 0 {
			continue
		}
		rows = append(rows, Row{
			PlayerID:        key.TrackID,
			AverageSpeedKmh: stat.Mean(acc.SpeedSamples, nil),
			MaxSpeedKmh:     floats.Max(acc.SpeedSamples),
			TotalDistanceM:  acc.TotalDistance,
			NumSpeedSamples: len(acc.SpeedSamples),
			Class:           key.Class,
			Team:            TeamOf(store, key.TrackID),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PlayerID != rows[j].PlayerID {
			return rows[i].PlayerID < rows[j].PlayerID
		}
		return rows[i].Class < rows[j].Class
	})
	return rows
}

// TeamOf returns the first team assigned to trackID in the players frames,
// or 0 when none is recorded.
func TeamOf(store tracks.Store, trackID int) int {
	for _, frame := range store[tracks.Players] {
		if rec, ok := frame.Get(trackID); ok && rec.Team != 0 {
			return rec.Team
		}
	}
	return 0
}

// WriteCSV writes the header and rows to w.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Exporter writes summary rows into an output directory.
type Exporter struct {
	fs        fsutil.FileSystem
	outputDir string
	logf      func(format string, v ...interface{})
}

// NewExporter creates an Exporter. An empty outputDir selects
// config.DefaultOutputFolder; a nil fs selects the OS filesystem.
func NewExporter(fs fsutil.FileSystem, outputDir string) *Exporter {
	if fs == nil {
		fs = fsutil.OSFileSystem{}
	}
	if outputDir == "" {
		outputDir = config.DefaultOutputFolder
	}
	return &Exporter{
		fs:        fs,
		outputDir: outputDir,
		logf:      monitoring.Component("summary"),
	}
}

// Path returns the file Export writes to.
func (x *Exporter) Path() string {
	return filepath.Join(x.outputDir, FileName)
}

// Export builds the rows for src and writes them as CSV, creating the
// output directory if needed. It returns the written path, or ErrNoData
// without touching the filesystem when there are no rows.
func (x *Exporter) Export(src AccumulatorSource, store tracks.Store) (string, error) {
	rows := BuildRows(src, store)
	if len(rows) == 0 {
		x.logf("%v", ErrNoData)
		return "", ErrNoData
	}
	if err := x.writeRows(rows); err != nil {
		return "", err
	}
	x.logf("exported %d rows to %s", len(rows), x.Path())
	return x.Path(), nil
}

func (x *Exporter) writeRows(rows []Row) (err error) {
	if err := x.fs.MkdirAll(x.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	f, err := x.fs.Create(x.Path())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", x.Path(), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", x.Path(), cerr)
		}
	}()
	if err := WriteCSV(f, rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", x.Path(), err)
	}
	return nil
}
