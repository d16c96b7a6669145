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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// bezierCircle is the control point distance for approximating a quarter
// circle of radius 1 by a cubic Bézier curve.
const bezierCircle = 0.5522847498

// Rectangle builds the closed axis-parallel rectangle with corners
// (x0, y0) and (x1, y1).
func Rectangle(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x0, y0)).
		LineTo(pt(x1, y0)).
		LineTo(pt(x1, y1)).
		LineTo(pt(x0, y1)).
		Close()
}

// Ellipse builds an axis-parallel ellipse from four cubic Bézier arcs.
func Ellipse(cx, cy, rx, ry float64) *path.Data {
	kx := bezierCircle * rx
	ky := bezierCircle * ry
	return (&path.Data{}).
		MoveTo(pt(cx+rx, cy)).
		CubeTo(pt(cx+rx, cy+ky), pt(cx+kx, cy+ry), pt(cx, cy+ry)).
		CubeTo(pt(cx-kx, cy+ry), pt(cx-rx, cy+ky), pt(cx-rx, cy)).
		CubeTo(pt(cx-rx, cy-ky), pt(cx-kx, cy-ry), pt(cx, cy-ry)).
		CubeTo(pt(cx+kx, cy-ry), pt(cx+rx, cy-ky), pt(cx+rx, cy)).
		Close()
}

// Circle builds a circle from four cubic Bézier arcs.
func Circle(cx, cy, radius float64) *path.Data {
	return Ellipse(cx, cy, radius, radius)
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
