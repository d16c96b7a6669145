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
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"seehuhn.de/go/treescene/canvas"
)

// Counts and sizes which do not scale with the image.
const (
	grassSpacing   = 6  // horizontal distance between grass blades
	grassJitter    = 2  // maximal horizontal lean of a blade tip
	grassMinHeight = 6  // blade heights are in [grassMinHeight, grassMaxHeight]
	grassMaxHeight = 18

	trunkRings = 6

	leavesPerLayer = 160

	highlightCount     = 40
	highlightMinRadius = 6
	highlightMaxRadius = 14
)

// DrawSky paints a vertical gradient from top (first row) to bottom (last
// row). Channels are interpolated linearly and truncated.
func DrawSky(c *canvas.Canvas, width, height int, top, bottom color.RGBA) {
	for y := range height {
		col := skyColor(y, height, top, bottom)
		c.FillRect(image.Pt(0, y), image.Pt(width, y), col)
	}
}

// skyColor returns the gradient color of row y.
func skyColor(y, height int, top, bottom color.RGBA) color.RGBA {
	t := float64(y) / float64(height-1)
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-t) + float64(b)*t)
	}
	return color.RGBA{
		R: lerp(top.R, bottom.R),
		G: lerp(top.G, bottom.G),
		B: lerp(top.B, bottom.B),
		A: 0xFF,
	}
}

// DrawGround fills everything from row groundY downwards with the base
// color and adds a grass blade every few pixels along the ground line.
// Blade positions are fixed; blade height and lean are random.
func DrawGround(c *canvas.Canvas, rng *rand.Rand, width, height, groundY int, base, grass color.RGBA) {
	c.FillRect(image.Pt(0, groundY), image.Pt(width, height), base)
	for x := 0; x < width; x += grassSpacing {
		bladeHeight := randInt(rng, grassMinHeight, grassMaxHeight)
		lean := randInt(rng, -grassJitter, grassJitter)
		c.DrawLine(image.Pt(x, groundY), image.Pt(x+lean, groundY-bladeHeight), 1, grass)
	}
}

// DrawTrunk paints the trunk as a rectangle standing on the ground line,
// with evenly spaced horizontal bark rings.
func DrawTrunk(c *canvas.Canvas, cx, groundY, width, height int, trunk, ring color.RGBA) {
	left := cx - width/2
	right := cx + width/2
	top := groundY - height
	c.FillRect(image.Pt(left, top), image.Pt(right, groundY), trunk)
	for i := range trunkRings {
		y := top + int(float64((i+1)*height)/(trunkRings+1))
		c.DrawLine(image.Pt(left, y), image.Pt(right, y), 1, ring)
	}
}

// DrawCanopy scatters randomly placed and colored leaf disks around
// (cx, topY). Leaf distances from the center follow a normal distribution
// around 0.6*radius; negative samples land on the opposite side.
func DrawCanopy(c *canvas.Canvas, rng *rand.Rand, cx, topY, radius int, leaves []color.RGBA) {
	if len(leaves) == 0 {
		return
	}
	r := float64(radius)
	minLeaf := int(r * 0.08)
	maxLeaf := int(r * 0.2)
	for range leavesPerLayer {
		angle := rng.Float64() * 2 * math.Pi
		dist := rng.NormFloat64()*r*0.3 + r*0.6
		x := int(float64(cx) + math.Cos(angle)*dist*uniform(rng, 0.2, 1))
		y := int(float64(topY) + math.Sin(angle)*dist*uniform(rng, 0.2, 1))
		leafRadius := randInt(rng, minLeaf, maxLeaf)
		col := leaves[rng.IntN(len(leaves))]
		c.FillDisk(image.Pt(x, y), leafRadius, col)
	}
}

// DrawHighlights adds lighter disks over the upper part of the canopy.
// It must run after the canopy layers.
func DrawHighlights(c *canvas.Canvas, rng *rand.Rand, cx, top, radius int, col color.Color) {
	for range highlightCount {
		x := randInt(rng, cx-radius/2, cx+radius/2)
		y := randInt(rng, top-radius/6, top+radius/2)
		r := randInt(rng, highlightMinRadius, highlightMaxRadius)
		c.FillDisk(image.Pt(x, y), r, col)
	}
}

// randInt returns a uniformly distributed integer in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// uniform returns a uniformly distributed number in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
