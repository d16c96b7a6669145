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

// Package canvas implements an opaque RGB pixel buffer with simple drawing
// primitives.
//
// Shapes are composited in the order they are drawn, later shapes covering
// earlier ones. Shape edges are anti-aliased; pixels which a shape covers
// completely receive exactly the shape's color. All coordinates are pixel
// indices: a rectangle from (0, 0) to (2, 2) covers nine pixels. Shapes
// may extend past the canvas and are clipped to it.
package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/treescene/raster"
)

// AlphaMode selects how the alpha component of a drawing color is used.
type AlphaMode int

const (
	// IgnoreAlpha draws every color as fully opaque.
	IgnoreAlpha AlphaMode = iota

	// BlendAlpha composites colors over the existing pixels
	// according to their alpha value.
	BlendAlpha
)

func (m AlphaMode) String() string {
	switch m {
	case IgnoreAlpha:
		return "ignore"
	case BlendAlpha:
		return "blend"
	default:
		return "unknown"
	}
}

// Canvas is a fixed-size RGB image which is modified in place.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	// Alpha controls the treatment of translucent colors.
	Alpha AlphaMode

	img  *image.RGBA
	ras  *raster.Rasteriser
	clip rect.Rect

	// paint state for composite
	src   color.NRGBA
	alpha float32
	emit  raster.EmitFunc
}

// New allocates a width×height canvas filled with the background color.
func New(width, height int, background color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bg := opaque(background)
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(width), URy: float64(height)}
	c := &Canvas{
		img:  img,
		ras:  raster.NewRasteriser(clip),
		clip: clip,
	}
	c.emit = c.composite
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Bounds returns the pixel rectangle of the canvas.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Rect }

// Image returns the pixel buffer. The image shares its memory with the
// canvas.
func (c *Canvas) Image() *image.RGBA { return c.img }

// At returns the color of the pixel at (x, y).
func (c *Canvas) At(x, y int) color.RGBA { return c.img.RGBAAt(x, y) }

// FillRect fills the rectangle with corners p0 and p1, both included.
func (c *Canvas) FillRect(p0, p1 image.Point, col color.Color) {
	r := image.Rectangle{Min: p0, Max: p1}.Canon()
	c.begin(col)
	c.ras.FillNonZero(raster.Rectangle(
		float64(r.Min.X), float64(r.Min.Y),
		float64(r.Max.X+1), float64(r.Max.Y+1)), c.emit)
}

// DrawLine draws a line of the given width between the centers of pixels
// p0 and p1. Both end pixels are part of the line.
func (c *Canvas) DrawLine(p0, p1 image.Point, width int, col color.Color) {
	if width < 1 {
		width = 1
	}
	c.begin(col)
	c.ras.Width = float64(width)
	c.ras.Cap = graphics.LineCapSquare
	c.ras.StrokeLine(pixelCenter(p0), pixelCenter(p1), c.emit)
}

// FillEllipse fills the ellipse inscribed in the rectangle with corners p0
// and p1, both included.
func (c *Canvas) FillEllipse(p0, p1 image.Point, col color.Color) {
	r := image.Rectangle{Min: p0, Max: p1}.Canon()
	rx := float64(r.Dx()+1) / 2
	ry := float64(r.Dy()+1) / 2
	c.begin(col)
	c.ras.FillNonZero(raster.Ellipse(float64(r.Min.X)+rx, float64(r.Min.Y)+ry, rx, ry), c.emit)
}

// FillDisk fills the disk with the given center pixel and radius.
// A negative radius is treated as zero, which draws the center pixel.
func (c *Canvas) FillDisk(center image.Point, radius int, col color.Color) {
	radius = max(radius, 0)
	d := image.Point{X: radius, Y: radius}
	c.FillEllipse(center.Sub(d), center.Add(d), col)
}

// begin sets up the rasteriser and the paint color for the next shape.
func (c *Canvas) begin(col color.Color) {
	c.ras.Reset(c.clip)
	c.src = color.NRGBAModel.Convert(col).(color.NRGBA)
	c.alpha = 1
	if c.Alpha == BlendAlpha {
		c.alpha = float32(c.src.A) / 255
	}
}

// composite blends the paint color into one scanline span.
func (c *Canvas) composite(y, xMin int, coverage []float32) {
	i := c.img.PixOffset(xMin, y)
	pix := c.img.Pix[i : i+4*len(coverage) : i+4*len(coverage)]
	for k, cov := range coverage {
		a := cov * c.alpha
		p := pix[4*k : 4*k+4 : 4*k+4]
		if a >= 1 {
			p[0], p[1], p[2] = c.src.R, c.src.G, c.src.B
		} else {
			p[0] = mix(p[0], c.src.R, a)
			p[1] = mix(p[1], c.src.G, a)
			p[2] = mix(p[2], c.src.B, a)
		}
		p[3] = 0xFF
	}
}

// mix returns dst moved towards src by the fraction a, rounded.
func mix(dst, src uint8, a float32) uint8 {
	d := float32(dst)
	return uint8(d + (float32(src)-d)*a + 0.5)
}

func pixelCenter(p image.Point) vec.Vec2 {
	return vec.Vec2{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5}
}

func opaque(col color.Color) color.RGBA {
	c := color.NRGBAModel.Convert(col).(color.NRGBA)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}
