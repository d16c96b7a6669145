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

package canvas

import (
	"image"
	"image/color"
	"testing"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	brown = color.RGBA{R: 101, G: 67, B: 33, A: 255}
	green = color.RGBA{R: 34, G: 139, B: 34, A: 255}
)

func TestNew(t *testing.T) {
	c := New(7, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 40})
	if c.Width() != 7 || c.Height() != 5 {
		t.Fatalf("size = %dx%d, want 7x5", c.Width(), c.Height())
	}
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	for y := range 5 {
		for x := range 7 {
			if got := c.At(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFillRect(t *testing.T) {
	c := New(10, 10, white)
	// Corners given in reverse order; both are included.
	c.FillRect(image.Pt(6, 7), image.Pt(2, 3), brown)

	for y := range 10 {
		for x := range 10 {
			want := white
			if x >= 2 && x <= 6 && y >= 3 && y <= 7 {
				want = brown
			}
			if got := c.At(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFillRectClipped(t *testing.T) {
	c := New(10, 10, white)
	c.FillRect(image.Pt(-5, 8), image.Pt(20, 30), green)

	for x := range 10 {
		if got := c.At(x, 9); got != green {
			t.Errorf("pixel (%d,9) = %v, want %v", x, got, green)
		}
		if got := c.At(x, 7); got != white {
			t.Errorf("pixel (%d,7) = %v, want %v", x, got, white)
		}
	}
}

func TestDrawLine(t *testing.T) {
	c := New(10, 10, white)
	c.DrawLine(image.Pt(1, 4), image.Pt(8, 4), 1, brown)

	for x := range 10 {
		want := white
		if x >= 1 && x <= 8 {
			want = brown
		}
		if got := c.At(x, 4); got != want {
			t.Errorf("pixel (%d,4) = %v, want %v", x, got, want)
		}
		if got := c.At(x, 3); got != white {
			t.Errorf("pixel (%d,3) = %v, want %v", x, got, white)
		}
	}

	// A slanted line touches both of its end pixels.
	c.DrawLine(image.Pt(2, 8), image.Pt(4, 1), 1, green)
	for _, p := range []image.Point{{2, 8}, {4, 1}} {
		if got := c.At(p.X, p.Y); got == white {
			t.Errorf("end pixel %v not painted", p)
		}
	}
}

func TestFillDisk(t *testing.T) {
	c := New(40, 40, white)
	c.FillDisk(image.Pt(20, 20), 8, green)

	if got := c.At(20, 20); got != green {
		t.Errorf("center = %v, want %v", got, green)
	}
	// The disk spans the pixels 12..28 in each direction.
	for _, p := range []image.Point{{12, 20}, {28, 20}, {20, 12}, {20, 28}} {
		if got := c.At(p.X, p.Y); got == white {
			t.Errorf("pixel %v not painted", p)
		}
	}
	for _, p := range []image.Point{{11, 20}, {29, 20}, {20, 11}, {20, 29}, {13, 13}} {
		if got := c.At(p.X, p.Y); got != white {
			t.Errorf("pixel %v = %v, want background", p, got)
		}
	}
}

func TestFillDiskOutside(t *testing.T) {
	c := New(10, 10, white)
	c.FillDisk(image.Pt(-50, -50), 5, green)
	c.FillDisk(image.Pt(-3, 5), 5, green)

	if got := c.At(0, 5); got != green {
		t.Errorf("pixel (0,5) = %v, want %v", got, green)
	}
	if got := c.At(9, 9); got != white {
		t.Errorf("pixel (9,9) = %v, want %v", got, white)
	}
}

func TestFillEllipse(t *testing.T) {
	c := New(30, 20, white)
	c.FillEllipse(image.Pt(2, 5), image.Pt(26, 13), brown)

	if got := c.At(14, 9); got != brown {
		t.Errorf("center = %v, want %v", got, brown)
	}
	if got := c.At(2, 5); got != white {
		t.Errorf("corner = %v, want background", got)
	}
}

func TestAlphaModes(t *testing.T) {
	highlight := color.NRGBA{R: 220, G: 255, B: 200, A: 128}

	c := New(20, 20, green)
	c.FillDisk(image.Pt(10, 10), 5, highlight)
	want := color.RGBA{R: 220, G: 255, B: 200, A: 255}
	if got := c.At(10, 10); got != want {
		t.Errorf("IgnoreAlpha: center = %v, want %v", got, want)
	}

	c = New(20, 20, green)
	c.Alpha = BlendAlpha
	c.FillDisk(image.Pt(10, 10), 5, highlight)
	got := c.At(10, 10)
	wantBlend := color.RGBA{
		R: mix(green.R, highlight.R, 128.0/255),
		G: mix(green.G, highlight.G, 128.0/255),
		B: mix(green.B, highlight.B, 128.0/255),
		A: 255,
	}
	if got != wantBlend {
		t.Errorf("BlendAlpha: center = %v, want %v", got, wantBlend)
	}
	if got.R <= green.R || got.R >= highlight.R {
		t.Errorf("BlendAlpha: red channel %d not between %d and %d", got.R, green.R, highlight.R)
	}
}

func TestMix(t *testing.T) {
	cases := []struct {
		dst, src uint8
		a        float32
		want     uint8
	}{
		{0, 255, 0, 0},
		{0, 255, 1, 255},
		{255, 0, 0, 255},
		{255, 0, 1, 0},
		{100, 200, 0.5, 150},
		{10, 11, 0.99999994, 11},
	}
	for _, tc := range cases {
		if got := mix(tc.dst, tc.src, tc.a); got != tc.want {
			t.Errorf("mix(%d, %d, %g) = %d, want %d", tc.dst, tc.src, tc.a, got, tc.want)
		}
	}
}
