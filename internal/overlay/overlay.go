// Package overlay draws per-track speed and distance labels onto video
// frames.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/banshee-data/pitch.report/internal/config"
	"github.com/banshee-data/pitch.report/internal/tracks"
	"github.com/banshee-data/pitch.report/internal/units"
)

// Options controls label placement and style.
type Options struct {
	Offset      int         // pixels below the foot position for the speed label
	LineSpacing int         // pixels between the speed and distance labels
	Thickness   int         // horizontal strokes per glyph; 2 gives a bold look
	Color       color.Color // text colour
	Face        font.Face
}

// DefaultOptions returns black 7x13 labels 40px below the foot position
// with the distance line 20px under the speed line.
func DefaultOptions() Options {
	return Options{
		Offset:      config.DefaultOverlayShift,
		LineSpacing: 20,
		Thickness:   2,
		Color:       color.Black,
		Face:        basicfont.Face7x13,
	}
}

// Renderer draws kinematic labels. It never mutates its inputs.
type Renderer struct {
	opts Options
}

// NewRenderer creates a Renderer. Start from DefaultOptions; a nil Face or
// Color, non-positive LineSpacing or Thickness, and a negative Offset take
// their defaults.
func NewRenderer(opts Options) *Renderer {
	def := DefaultOptions()
	if opts.Face == nil {
		opts.Face = def.Face
	}
	if opts.Color == nil {
		opts.Color = def.Color
	}
	if opts.LineSpacing <= 0 {
		opts.LineSpacing = def.LineSpacing
	}
	if opts.Thickness <= 0 {
		opts.Thickness = def.Thickness
	}
	if opts.Offset < 0 {
		opts.Offset = def.Offset
	}
	return &Renderer{opts: opts}
}

// Labels returns the speed and distance text for an annotated record.
func Labels(rec *tracks.Record) (speed, distance string) {
	return fmt.Sprintf("%.2f %s", *rec.Speed, units.Label(units.KMPH)),
		fmt.Sprintf("%.2f m", *rec.Distance)
}

// Render returns a new frame sequence of the same length and order with
// labels drawn for every annotated record of the non-excluded classes.
func (r *Renderer) Render(frames []image.Image, store tracks.Store) []*image.RGBA {
	out := make([]*image.RGBA, len(frames))
	for i, frame := range frames {
		out[i] = r.RenderFrame(frame, i, store)
	}
	return out
}

// RenderFrame copies frame and draws the labels for frame index idx.
func (r *Renderer) RenderFrame(frame image.Image, idx int, store tracks.Store) *image.RGBA {
	b := frame.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, frame, b.Min, draw.Src)

	for _, class := range store.Classes() {
		if tracks.IsExcluded(class) {
			continue
		}
		frames := store[class]
		if idx < 0 || idx >= len(frames) {
			continue
		}
		for _, id := range frames[idx].TrackIDs() {
			rec, _ := frames[idx].Get(id)
			if !rec.HasSpeed() {
				continue
			}
			r.drawLabels(dst, rec)
		}
	}
	return dst
}

func (r *Renderer) drawLabels(dst *image.RGBA, rec *tracks.Record) {
	fx, fy := rec.BBox.FootPosition()
	x, y := int(fx), int(fy)+r.opts.Offset

	speed, distance := Labels(rec)
	r.drawText(dst, speed, x, y)
	r.drawText(dst, distance, x, y+r.opts.LineSpacing)
}

// drawText draws s with its baseline origin at (x, y).
func (r *Renderer) drawText(dst *image.RGBA, s string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(r.opts.Color),
		Face: r.opts.Face,
	}
	for dx := 0; dx < r.opts.Thickness; dx++ {
		d.Dot = fixed.P(x+dx, y)
		d.DrawString(s)
	}
}
