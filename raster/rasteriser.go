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

// Package raster converts filled and stroked paths into anti-aliased
// pixel coverage.
//
// Coverage is computed with the signed-area model: every edge deposits a
// "cover" value (its signed vertical extent within a pixel column) and an
// "area" value (cover weighted by how far right of the pixel's left border
// the edge lies). Summing cover from left to right and adding the area of
// the current pixel gives the fraction of the pixel inside the path.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one scanline span. Coverage[i] belongs
// to pixel (xMin+i, y). The slice is only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a non-horizontal line segment in device coordinates, stored with
// y0 < y1.
type edge struct {
	x0, y0 float64 // upper end point
	x1, y1 float64 // lower end point
	dxdy   float64
	dir    float32 // +1 if the segment originally pointed down, -1 otherwise
}

// Rasteriser turns paths into coverage values. A Rasteriser keeps its
// scratch buffers between calls, so the same instance should be reused for
// many shapes.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip limits all output to this device-space rectangle.
	// The coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the polygon used to approximate it.
	Flatness float64

	// Width is the stroke width in user-space units.
	Width float64

	// Cap is the style used for the ends of stroked segments.
	Cap graphics.LineCapStyle

	cover  []float32
	area   []float32
	edges  []edge
	active []int
	poly   []vec.Vec2

	bboxEmpty             bool
	bboxXMin, bboxXMax    float64
	bboxYMin, bboxYMax    float64
	subpathStart, current vec.Vec2
	subpathOpen           bool
}

// NewRasteriser returns a Rasteriser for the given clip rectangle, using
// the identity CTM, a width of one unit and butt caps.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
		Width:    1,
		Cap:      graphics.LineCapButt,
	}
}

// Reset prepares the Rasteriser for a new clip rectangle. All other
// parameters revert to their defaults; the internal buffers are kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
}

// FillNonZero fills p using the nonzero winding rule.
// Open subpaths are closed implicitly.
func (r *Rasteriser) FillNonZero(p *path.Data, emit EmitFunc) {
	r.beginEdges()

	coords := p.Coords
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			r.closeSubpath()
			r.subpathStart = coords[0]
			r.current = coords[0]
			r.subpathOpen = true
			coords = coords[1:]
		case path.CmdLineTo:
			r.lineTo(coords[0])
			coords = coords[1:]
		case path.CmdQuadTo:
			r.flattenQuadratic(r.current, coords[0], coords[1])
			coords = coords[2:]
		case path.CmdCubeTo:
			r.flattenCubic(r.current, coords[0], coords[1], coords[2])
			coords = coords[3:]
		case path.CmdClose:
			r.closeSubpath()
		}
	}
	r.closeSubpath()

	r.sweep(emit)
}

// fillPolygon fills the closed polygon r.poly, which is given in user
// space, using the nonzero winding rule.
func (r *Rasteriser) fillPolygon(emit EmitFunc) {
	if len(r.poly) < 3 {
		return
	}
	r.beginEdges()
	prev := r.poly[len(r.poly)-1]
	for _, p := range r.poly {
		r.addEdge(prev, p)
		prev = p
	}
	r.sweep(emit)
}

func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
	r.subpathOpen = false
}

func (r *Rasteriser) lineTo(p vec.Vec2) {
	r.addEdge(r.current, p)
	r.current = p
}

func (r *Rasteriser) closeSubpath() {
	if !r.subpathOpen {
		return
	}
	if r.current != r.subpathStart {
		r.addEdge(r.current, r.subpathStart)
	}
	r.current = r.subpathStart
}

// toDevice applies the CTM to a point.
func (r *Rasteriser) toDevice(p vec.Vec2) (x, y float64) {
	m := r.CTM
	return m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]
}

// deviceLength returns the length of v after applying the linear part of
// the CTM.
func (r *Rasteriser) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return math.Hypot(m[0]*v.X+m[2]*v.Y, m[1]*v.X+m[3]*v.Y)
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		r.lineTo(p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t)))
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the number of segments.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3))
	n := 1
	if m := max(d1, d2); m > 0 {
		if f := math.Sqrt(3 * m / (4 * r.Flatness)); f > 1 {
			n = int(math.Ceil(f))
		}
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.lineTo(pt)
	}
}

// addEdge records the segment from p0 to p1 (user space).
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	x0, y0 := r.toDevice(p0)
	x1, y1 := r.toDevice(p1)

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}

	e := edge{x0: x0, y0: y0, x1: x1, y1: y1, dir: 1}
	if dy < 0 {
		e.x0, e.y0, e.x1, e.y1 = x1, y1, x0, y0
		e.dir = -1
	}
	e.dxdy = (e.x1 - e.x0) / (e.y1 - e.y0)
	r.edges = append(r.edges, e)

	if r.bboxEmpty {
		r.bboxXMin, r.bboxXMax = min(x0, x1), max(x0, x1)
		r.bboxYMin, r.bboxYMax = e.y0, e.y1
		r.bboxEmpty = false
		return
	}
	r.bboxXMin = min(r.bboxXMin, x0, x1)
	r.bboxXMax = max(r.bboxXMax, x0, x1)
	r.bboxYMin = min(r.bboxYMin, e.y0)
	r.bboxYMax = max(r.bboxYMax, e.y1)
}

// pixelBounds returns the pixel range touched by the collected edges,
// restricted to the clip rectangle.
func (r *Rasteriser) pixelBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	xMin = max(int(math.Floor(r.bboxXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bboxXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bboxYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bboxYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// sweep walks the scanlines of the collected edges from top to bottom,
// keeping a list of the edges which intersect the current scanline.
func (r *Rasteriser) sweep(emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.pixelBounds()
	if !ok {
		return
	}

	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.y0, b.y0)
	})
	r.active = r.active[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		top := float64(y)
		bottom := float64(y + 1)

		for next < len(r.edges) && r.edges[next].y0 < bottom {
			r.active = append(r.active, next)
			next++
		}
		n := 0
		for _, idx := range r.active {
			if r.edges[idx].y1 > top {
				r.active[n] = idx
				n++
			}
		}
		r.active = r.active[:n]
		if n == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, idx := range r.active {
			r.accumulate(&r.edges[idx], top, bottom, xMin, xMax)
		}
		integrateNonZero(r.cover, r.area)

		if span, offset := trimZeros(r.cover); span != nil {
			emit(y, xMin+offset, span)
		}
	}
}

// accumulate adds the contribution of e within the scanline [top, bottom)
// to the cover and area buffers, which start at pixel column xMin.
func (r *Rasteriser) accumulate(e *edge, top, bottom float64, xMin, xMax int) {
	top = max(top, e.y0)
	bottom = min(bottom, e.y1)
	if bottom <= top {
		return
	}

	xTop := e.x0 + e.dxdy*(top-e.y0)
	xBottom := e.x0 + e.dxdy*(bottom-e.y0)
	left, right := min(xTop, xBottom), max(xTop, xBottom)
	pixLeft := int(math.Floor(left))
	pixRight := int(math.Floor(right))

	if pixLeft == pixRight {
		r.deposit(e.dir, bottom-top, (xTop+xBottom)/2, pixLeft, xMin, xMax)
		return
	}

	// The edge crosses several pixel columns: split it at the column
	// borders.
	dydx := 1 / e.dxdy
	for pix := max(pixLeft, xMin); pix <= pixRight && pix < xMax; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		segTop := max(min(ya, yb), top)
		segBottom := min(max(ya, yb), bottom)
		if segBottom <= segTop {
			continue
		}
		xMid := e.x0 + e.dxdy*((segTop+segBottom)/2-e.y0)
		r.deposit(e.dir, segBottom-segTop, xMid, pix, xMin, xMax)
	}
	if pixLeft < xMin {
		// The part left of the buffer contributes full cover to the
		// first column.
		yEdge := e.y0 + dydx*(float64(xMin)-e.x0)
		var dy float64
		if e.dxdy > 0 {
			dy = min(yEdge, bottom) - top
		} else {
			dy = bottom - max(yEdge, top)
		}
		if dy > 0 {
			v := e.dir * float32(dy)
			r.cover[0] += v
			r.area[0] += v
		}
	}
}

// deposit records a piece of an edge which lies within pixel column pix.
// Pieces left of the buffer are folded into the first column.
func (r *Rasteriser) deposit(dir float32, dy, xMid float64, pix, xMin, xMax int) {
	v := dir * float32(dy)
	switch {
	case pix < xMin:
		r.cover[0] += v
		r.area[0] += v
	case pix < xMax:
		i := pix - xMin
		r.cover[i] += v
		r.area[i] += v * float32(1-(xMid-float64(pix)))
	}
}

// integrateNonZero turns accumulated cover and area values into coverage
// using the nonzero winding rule. The result is stored in cover.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the part of coverage between the first and the last
// non-zero entry, together with its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage)
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is the curve flattening tolerance in device pixels.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimal vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the length below which a stroked segment is
	// treated as a single point.
	zeroLengthThreshold = 1e-10
)
