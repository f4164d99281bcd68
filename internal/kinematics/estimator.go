package kinematics

import (
	"sort"

	"github.com/banshee-data/pitch.report/internal/config"
	"github.com/banshee-data/pitch.report/internal/monitoring"
	"github.com/banshee-data/pitch.report/internal/tracks"
	"github.com/banshee-data/pitch.report/internal/units"
)

// Config holds the sampling parameters of an Estimator.
type Config struct {
	FrameWindow int     // Frames per measurement window
	FrameRate   float64 // Source video frames per second
}

// DefaultConfig returns the built-in sampling parameters.
func DefaultConfig() Config {
	return Config{
		FrameWindow: config.DefaultFrameWindow,
		FrameRate:   config.DefaultFrameRate,
	}
}

// ConfigFromAnalysis builds a Config from a loaded AnalysisConfig.
func ConfigFromAnalysis(cfg *config.AnalysisConfig) Config {
	return Config{
		FrameWindow: cfg.GetFrameWindow(),
		FrameRate:   cfg.GetFrameRate(),
	}
}

// TrackKey identifies one accumulator.
type TrackKey struct {
	Class   tracks.ObjectClass
	TrackID int
}

// Accumulator is the running state of one tracked entity.
type Accumulator struct {
	TotalDistance float64   // metres
	SpeedSamples  []float64 // km/h, in window order
}

// RunStats counts what happened to each (window, track) pair.
type RunStats struct {
	ClassesAnalysed     int
	Windows             int
	Measurements        int
	SkippedMissingTrack int // track absent from the window's end frame
	SkippedNoPosition   int // transformed position unset at either endpoint
	SkippedZeroElapsed  int // windows whose end frame equals their start frame
}

// Estimator computes windowed speed and cumulative distance.
type Estimator struct {
	cfg   Config
	acc   map[TrackKey]*Accumulator
	stats RunStats
	logf  func(format string, v ...interface{})
}

// NewEstimator creates an Estimator. Non-positive FrameWindow or FrameRate
// values fall back to DefaultConfig.
func NewEstimator(cfg Config) *Estimator {
	def := DefaultConfig()
	if cfg.FrameWindow <= 0 {
		cfg.FrameWindow = def.FrameWindow
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = def.FrameRate
	}
	return &Estimator{
		cfg:  cfg,
		acc:  make(map[TrackKey]*Accumulator),
		logf: monitoring.Component("kinematics"),
	}
}

// Config returns the effective sampling parameters.
func (e *Estimator) Config() Config {
	return e.cfg
}

// Window is a measurement interval. Start and End are the two sampled
// frames; write-back covers [Start, End).
type Window struct {
	Start int
	End   int
}

// Windows partitions [0, frameCount) into windows starting at multiples of
// frameWindow. End is clamped to frameCount-1, so the last frame is an end
// point only when a window reaches past it.
func Windows(frameCount, frameWindow int) []Window {
	if frameCount <= 0 || frameWindow <= 0 {
		return nil
	}
	windows := make([]Window, 0, (frameCount+frameWindow-1)/frameWindow)
	for start := 0; start < frameCount; start += frameWindow {
		windows = append(windows, Window{
			Start: start,
			End:   min(start+frameWindow, frameCount-1),
		})
	}
	return windows
}

// Annotate measures every non-excluded class of store, updates the
// accumulators and sets Speed and Distance on the covered records.
// Missing tracks and unset positions are skipped silently.
func (e *Estimator) Annotate(store tracks.Store) {
	for _, class := range store.Classes() {
		if tracks.IsExcluded(class) {
			continue
		}
		e.annotateClass(class, store[class])
	}
}

func (e *Estimator) annotateClass(class tracks.ObjectClass, frames []tracks.Frame) {
	e.stats.ClassesAnalysed++
	before := e.stats.Measurements

	windows := Windows(len(frames), e.cfg.FrameWindow)
	for _, w := range windows {
		e.stats.Windows++
		if w.End <= w.Start {
			e.stats.SkippedZeroElapsed++
			continue
		}

		startFrame, endFrame := frames[w.Start], frames[w.End]
		for _, id := range startFrame.TrackIDs() {
			startRec, _ := startFrame.Get(id)
			endRec, ok := endFrame.Get(id)
			if !ok {
				e.stats.SkippedMissingTrack++
				continue
			}
			if startRec.PositionTransformed == nil || endRec.PositionTransformed == nil {
				e.stats.SkippedNoPosition++
				continue
			}

			distance := startRec.PositionTransformed.DistanceTo(*endRec.PositionTransformed)
			speedKmh := e.speedKmh(distance, w.End-w.Start)

			key := TrackKey{Class: class, TrackID: id}
			acc := e.acc[key]
			if acc == nil {
				acc = &Accumulator{}
				e.acc[key] = acc
			}
			acc.TotalDistance += distance
			acc.SpeedSamples = append(acc.SpeedSamples, speedKmh)
			e.stats.Measurements++

			for g := w.Start; g < w.End; g++ {
				if rec, ok := frames[g].Get(id); ok {
					rec.SetKinematics(speedKmh, acc.TotalDistance)
				}
			}
		}
	}

	e.logf("class=%s frames=%d windows=%d measurements=%d",
		class, len(frames), len(windows), e.stats.Measurements-before)
}

// speedKmh converts a displacement over elapsedFrames into km/h.
func (e *Estimator) speedKmh(distance float64, elapsedFrames int) float64 {
	elapsed := float64(elapsedFrames) / e.cfg.FrameRate
	return units.ConvertSpeed(distance/elapsed, units.KMPH)
}

// Stats returns the counters of the run so far.
func (e *Estimator) Stats() RunStats {
	return e.stats
}

// Accumulator returns a copy of the state for key.
func (e *Estimator) Accumulator(key TrackKey) (Accumulator, bool) {
	acc, ok := e.acc[key]
	if !ok {
		return Accumulator{}, false
	}
	return acc.clone(), true
}

// Accumulators returns a deep copy of every accumulator.
func (e *Estimator) Accumulators() map[TrackKey]Accumulator {
	out := make(map[TrackKey]Accumulator, len(e.acc))
	for k, acc := range e.acc {
		out[k] = acc.clone()
	}
	return out
}

// Keys returns the accumulator keys ordered by class, then track ID.
func (e *Estimator) Keys() []TrackKey {
	keys := make([]TrackKey, 0, len(e.acc))
	for k := range e.acc {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Class != keys[j].Class {
			return keys[i].Class < keys[j].Class
		}
		return keys[i].TrackID < keys[j].TrackID
	})
	return keys
}

func (a *Accumulator) clone() Accumulator {
	samples := make([]float64, len(a.SpeedSamples))
	copy(samples, a.SpeedSamples)
	return Accumulator{TotalDistance: a.TotalDistance, SpeedSamples: samples}
}
