// Command speedstats annotates tracked objects with windowed speed and
// cumulative distance, writes the per-track summary CSV and optionally
// renders the annotations onto PNG frames.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/pitch.report/internal/config"
	"github.com/banshee-data/pitch.report/internal/fsutil"
	"github.com/banshee-data/pitch.report/internal/kinematics"
	"github.com/banshee-data/pitch.report/internal/overlay"
	"github.com/banshee-data/pitch.report/internal/summary"
	"github.com/banshee-data/pitch.report/internal/tracks"
	"github.com/banshee-data/pitch.report/internal/trackstore"
	"github.com/banshee-data/pitch.report/internal/version"
)

var (
	tracksPath  = flag.String("tracks", "", "Track store JSON document")
	dbPath      = flag.String("db", "", "SQLite database holding a track_observations table (alternative to -tracks)")
	framesTotal = flag.Int("frames-total", 0, "Number of frames in the source video, for -db (defaults to the last observed frame per class)")
	configPath  = flag.String("config", "", "Analysis config JSON (defaults are used when empty)")
	outDir      = flag.String("out", "", "Output folder for the summary CSV (overrides config)")
	frameWindow = flag.Int("frame-window", 0, "Frames per measurement window (overrides config when > 0)")
	frameRate   = flag.Float64("frame-rate", 0, "Video frame rate in frames per second (overrides config when > 0)")
	framesDir   = flag.String("frames", "", "Directory of PNG frames to annotate (optional)")
	renderedOut = flag.String("rendered-out", "", "Directory for annotated PNG frames (defaults to <out>/frames)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// options is the resolved command line for a single run.
type options struct {
	TracksPath  string
	DBPath      string
	FramesTotal int
	FramesDir   string
	RenderedOut string
	Config      *config.AnalysisConfig
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println("speedstats", version.String())
		return
	}
	if *framesTotal < 0 {
		log.Fatalf("-frames-total must be non-negative, got %d", *framesTotal)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	applyOverrides(cfg, *frameWindow, *frameRate, *outDir)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	opts := options{
		TracksPath:  *tracksPath,
		DBPath:      *dbPath,
		FramesTotal: *framesTotal,
		FramesDir:   *framesDir,
		RenderedOut: *renderedOut,
		Config:      cfg,
	}

	runID := uuid.NewString()
	log.Printf("speedstats %s run %s", version.String(), runID)
	start := time.Now()

	if err := run(context.Background(), fsutil.OSFileSystem{}, opts); err != nil {
		log.Fatalf("run %s failed: %v", runID, err)
	}
	log.Printf("run %s finished in %s", runID, time.Since(start).Round(time.Millisecond))
}

// loadConfig reads path. With no path it reads config.DefaultConfigPath
// when present and falls back to the built-in defaults otherwise.
func loadConfig(path string) (*config.AnalysisConfig, error) {
	if path == "" {
		if _, err := os.Stat(config.DefaultConfigPath); err != nil {
			return config.DefaultAnalysisConfig(), nil
		}
		path = config.DefaultConfigPath
	}
	return config.LoadAnalysisConfig(path)
}

// applyOverrides copies explicitly set flag values onto cfg.
func applyOverrides(cfg *config.AnalysisConfig, window int, rate float64, out string) {
	if window > 0 {
		cfg.FrameWindow = &window
	}
	if rate > 0 {
		cfg.FrameRate = &rate
	}
	if out != "" {
		cfg.OutputFolder = &out
	}
}

func run(ctx context.Context, fs fsutil.FileSystem, opts options) error {
	store, err := loadStore(ctx, fs, opts)
	if err != nil {
		return err
	}

	est := kinematics.NewEstimator(kinematics.ConfigFromAnalysis(opts.Config))
	est.Annotate(store)
	stats := est.Stats()
	log.Printf("recorded %d measurements over %d windows in %d classes (skipped: %d missing track, %d no position, %d zero elapsed)",
		stats.Measurements, stats.Windows, stats.ClassesAnalysed, stats.SkippedMissingTrack, stats.SkippedNoPosition, stats.SkippedZeroElapsed)

	exporter := summary.NewExporter(fs, opts.Config.GetOutputFolder())
	path, err := exporter.Export(est, store)
	switch {
	case errors.Is(err, summary.ErrNoData):
		log.Printf("no speed samples recorded, %s not written", exporter.Path())
	case err != nil:
		return err
	default:
		log.Printf("wrote %s", path)
	}

	if opts.FramesDir == "" {
		return nil
	}
	return renderFrames(fs, opts, store)
}

func loadStore(ctx context.Context, fs fsutil.FileSystem, opts options) (tracks.Store, error) {
	switch {
	case opts.TracksPath != "" && opts.DBPath != "":
		return nil, errors.New("-tracks and -db are mutually exclusive")
	case opts.TracksPath != "":
		return trackstore.LoadJSONFile(fs, opts.TracksPath)
	case opts.DBPath != "":
		db, err := trackstore.OpenSQLite(opts.DBPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return trackstore.LoadSQLite(ctx, db, opts.FramesTotal)
	default:
		return nil, errors.New("one of -tracks or -db is required")
	}
}

func renderFrames(fs fsutil.FileSystem, opts options, store tracks.Store) error {
	paths, err := fs.Glob(filepath.Join(opts.FramesDir, "*.png"))
	if err != nil {
		return fmt.Errorf("list frames in %s: %w", opts.FramesDir, err)
	}
	if len(paths) == 0 {
		log.Printf("no PNG frames found in %s", opts.FramesDir)
		return nil
	}

	frames, err := overlay.LoadPNGFrames(fs, paths)
	if err != nil {
		return err
	}

	ro := overlay.DefaultOptions()
	ro.Offset = opts.Config.GetOverlayOffset()
	renderer := overlay.NewRenderer(ro)
	rendered := renderer.Render(frames, store)

	dest := opts.RenderedOut
	if dest == "" {
		dest = filepath.Join(opts.Config.GetOutputFolder(), "frames")
	}
	written, err := overlay.SavePNGFrames(fs, dest, rendered)
	if err != nil {
		return err
	}
	log.Printf("rendered %d frames to %s", len(written), dest)
	return nil
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s (-tracks FILE | -db FILE) [flags]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
}
