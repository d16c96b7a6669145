// seehuhn.de/go/treescene - a procedural tree scene generator
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package scene

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"seehuhn.de/go/treescene/canvas"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config describes one tree scene.
type Config struct {
	// Width and Height give the image size in pixels.
	// Both must be at least 2.
	Width, Height int

	// OutputPath is the file the JPEG image is written to. Missing parent
	// directories are created.
	OutputPath string

	// Quality is the JPEG quality, 1 to 100.
	Quality int

	Palette Palette
	Layout  Layout

	// HighlightAlpha selects whether the alpha component of
	// Palette.Highlight is used. The default ignores it.
	HighlightAlpha canvas.AlphaMode
}

// Palette lists the colors of a scene.
type Palette struct {
	Background color.RGBA
	SkyTop     color.RGBA
	SkyBottom  color.RGBA
	Ground     color.RGBA
	Grass      color.RGBA
	Trunk      color.RGBA
	Ring       color.RGBA

	// Leaves holds the candidate leaf colors. A color may be listed more
	// than once to make it more frequent.
	Leaves []color.RGBA

	Highlight color.NRGBA
}

// Layout holds the proportions of the scene, as fractions of the image
// width or height.
type Layout struct {
	GroundLine   float64 // ground line, fraction of the height from the top
	TrunkHeight  float64 // fraction of the height
	TrunkWidth   float64 // fraction of the width
	CanopyLift   float64 // gap between trunk top and canopy center, fraction of the height
	CanopyRadius float64 // fraction of the height

	// CanopyLayers are drawn in order, each on top of the previous ones.
	CanopyLayers []CanopyLayer
}

// CanopyLayer describes one pass of the canopy renderer.
type CanopyLayer struct {
	Scale  float64 // multiplies the canopy radius
	DX, DY int     // offset of the layer center in pixels
}

// DefaultConfig returns the built-in scene: a 1200×800 image written to
// "treescene/tree.jpg" in the system's temporary directory.
func DefaultConfig() Config {
	return Config{
		Width:      1200,
		Height:     800,
		OutputPath: filepath.Join(os.TempDir(), "treescene", "tree.jpg"),
		Quality:    90,
		Palette:    DefaultPalette(),
		Layout:     DefaultLayout(),
	}
}

// DefaultPalette returns the colors of the built-in scene.
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		SkyTop:     color.RGBA{R: 135, G: 206, B: 235, A: 255},
		SkyBottom:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Ground:     color.RGBA{R: 98, G: 170, B: 85, A: 255},
		Grass:      color.RGBA{R: 34, G: 139, B: 34, A: 255},
		Trunk:      color.RGBA{R: 101, G: 67, B: 33, A: 255},
		Ring:       color.RGBA{R: 120, G: 85, B: 51, A: 255},
		Leaves: []color.RGBA{
			{R: 34, G: 139, B: 34, A: 255},
			{R: 46, G: 160, B: 44, A: 255},
			{R: 60, G: 179, B: 113, A: 255},
			{R: 50, G: 205, B: 50, A: 255},
			{R: 34, G: 139, B: 34, A: 255},
			{R: 24, G: 120, B: 20, A: 255},
		},
		Highlight: color.NRGBA{R: 220, G: 255, B: 200, A: 128},
	}
}

// DefaultLayout returns the proportions of the built-in scene.
func DefaultLayout() Layout {
	return Layout{
		GroundLine:   0.78,
		TrunkHeight:  0.22,
		TrunkWidth:   0.06,
		CanopyLift:   0.05,
		CanopyRadius: 0.25,
		CanopyLayers: []CanopyLayer{
			{Scale: 1.1, DX: 0, DY: 0},
			{Scale: 0.95, DX: 8, DY: 10},
			{Scale: 0.8, DX: 16, DY: 20},
		},
	}
}

// Validate checks that the configuration describes a drawable scene.
// All errors wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Width < 2 || c.Height < 2:
		return fmt.Errorf("%w: image size %dx%d, need at least 2x2",
			ErrInvalidConfig, c.Width, c.Height)
	case c.OutputPath == "":
		return fmt.Errorf("%w: empty output path", ErrInvalidConfig)
	case c.Quality < 1 || c.Quality > 100:
		return fmt.Errorf("%w: JPEG quality %d not in 1..100", ErrInvalidConfig, c.Quality)
	case len(c.Palette.Leaves) == 0:
		return fmt.Errorf("%w: no leaf colors", ErrInvalidConfig)
	case len(c.Layout.CanopyLayers) == 0:
		return fmt.Errorf("%w: no canopy layers", ErrInvalidConfig)
	}

	l := &c.Layout
	ratios := []struct {
		name  string
		value float64
	}{
		{"ground line", l.GroundLine},
		{"trunk height", l.TrunkHeight},
		{"trunk width", l.TrunkWidth},
		{"canopy radius", l.CanopyRadius},
	}
	for _, r := range ratios {
		if !(r.value > 0) {
			return fmt.Errorf("%w: %s ratio %g must be positive", ErrInvalidConfig, r.name, r.value)
		}
	}
	if l.CanopyLift < 0 {
		return fmt.Errorf("%w: canopy lift %g is negative", ErrInvalidConfig, l.CanopyLift)
	}
	for i, layer := range l.CanopyLayers {
		if !(layer.Scale > 0) {
			return fmt.Errorf("%w: canopy layer %d has scale %g", ErrInvalidConfig, i, layer.Scale)
		}
	}
	return nil
}

// Geometry holds the pixel positions of the scene elements.
type Geometry struct {
	GroundY      int // first row of the ground
	TrunkX       int // horizontal center of the trunk
	TrunkWidth   int
	TrunkHeight  int
	CanopyX      int // center of the canopy
	CanopyTop    int // vertical center of the canopy
	CanopyRadius int
}

// Geometry derives the pixel layout from the image size and the layout
// ratios. Fractional pixel positions are truncated.
func (c *Config) Geometry() Geometry {
	l := &c.Layout
	g := Geometry{
		GroundY:      int(float64(c.Height) * l.GroundLine),
		TrunkX:       c.Width / 2,
		TrunkWidth:   int(float64(c.Width) * l.TrunkWidth),
		TrunkHeight:  int(float64(c.Height) * l.TrunkHeight),
		CanopyX:      c.Width / 2,
		CanopyRadius: int(float64(c.Height) * l.CanopyRadius),
	}
	g.CanopyTop = g.GroundY - g.TrunkHeight - int(float64(c.Height)*l.CanopyLift)
	return g
}
