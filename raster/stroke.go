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

package raster

import (
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// StrokeLine renders the segment from a to b (user space) with the
// current Width and Cap. A zero-length segment is drawn as a square for
// LineCapSquare, as a disk for LineCapRound, and not at all for
// LineCapButt.
func (r *Rasteriser) StrokeLine(a, b vec.Vec2, emit EmitFunc) {
	d := r.Width / 2
	if d <= 0 {
		return
	}

	r.poly = r.poly[:0]
	ab := b.Sub(a)
	length := ab.Length()
	if length < zeroLengthThreshold {
		switch r.Cap {
		case graphics.LineCapRound:
			r.addArc(a, d, vec.Vec2{X: 1, Y: 0}, 2*math.Pi)
		case graphics.LineCapSquare:
			r.addSquareCorners(a, vec.Vec2{X: 1, Y: 0}, d)
		}
		r.fillPolygon(emit)
		return
	}

	t := ab.Mul(1 / length) // unit tangent
	n := vec.Vec2{X: -t.Y, Y: t.X}

	// Walk around the outline: along the +n side from a to b, around the
	// cap at b, back along the -n side, and around the cap at a.
	r.poly = append(r.poly, a.Add(n.Mul(d)), b.Add(n.Mul(d)))
	r.addCap(b, t, d)
	r.poly = append(r.poly, b.Sub(n.Mul(d)), a.Sub(n.Mul(d)))
	r.addCap(a, t.Mul(-1), d)

	r.fillPolygon(emit)
}

// addCap appends the outline of the cap at end point p, where t is the
// unit direction pointing out of the segment. The polygon is expected to
// arrive at p + d*n and continue from p - d*n, with n = t rotated by 90°.
func (r *Rasteriser) addCap(p, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		r.poly = append(r.poly,
			p.Add(n.Mul(d)).Add(t.Mul(d)),
			p.Sub(n.Mul(d)).Add(t.Mul(d)))
	case graphics.LineCapRound:
		// The arc from +n to -n through t.
		r.addArc(p, d, n, -math.Pi)
	}
}

// addSquareCorners appends the four corners of the square of half-size d
// centered at p, with one side parallel to t.
func (r *Rasteriser) addSquareCorners(p, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}
	r.poly = append(r.poly,
		p.Add(t.Mul(d)).Add(n.Mul(d)),
		p.Sub(t.Mul(d)).Add(n.Mul(d)),
		p.Sub(t.Mul(d)).Sub(n.Mul(d)),
		p.Add(t.Mul(d)).Sub(n.Mul(d)))
}

// addArc appends points on the circle of the given radius around center,
// starting in direction start and turning by sweep radians. The start
// point itself is not appended; the end point is.
func (r *Rasteriser) addArc(center vec.Vec2, radius float64, start vec.Vec2, sweep float64) {
	// Choose the number of steps so that the chord deviates from the arc by
	// at most Flatness device pixels.
	devRadius := r.deviceLength(vec.Vec2{X: radius, Y: 0})
	step := math.Pi / 2
	if devRadius > r.Flatness {
		step = 2 * math.Acos(1-r.Flatness/devRadius)
	}
	n := max(int(math.Ceil(math.Abs(sweep)/step)), 4)

	angle0 := math.Atan2(start.Y, start.X)
	for i := 1; i <= n; i++ {
		phi := angle0 + sweep*float64(i)/float64(n)
		r.poly = append(r.poly, vec.Vec2{
			X: center.X + radius*math.Cos(phi),
			Y: center.Y + radius*math.Sin(phi),
		})
	}
}
