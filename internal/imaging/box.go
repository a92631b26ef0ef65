package imaging

import (
	"fmt"
	"image"
)

// Box is an axis-aligned rectangle in pixel coordinates.
//
// (X0, Y0) is the inclusive top-left corner and (X1, Y1) the exclusive
// bottom-right corner, matching image.Rectangle. A box with X1 <= X0 or
// Y1 <= Y0 is empty.
type Box struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// BoxFromRect converts an image.Rectangle.
func BoxFromRect(r image.Rectangle) Box {
	return Box{X0: r.Min.X, Y0: r.Min.Y, X1: r.Max.X, Y1: r.Max.Y}
}

// Dx returns the box width.
func (b Box) Dx() int { return b.X1 - b.X0 }

// Dy returns the box height.
func (b Box) Dy() int { return b.Y1 - b.Y0 }

// Area returns Dx*Dy, or 0 for an empty box.
func (b Box) Area() int {
	if b.Empty() {
		return 0
	}
	return b.Dx() * b.Dy()
}

// Empty reports whether the box has no positive extent.
func (b Box) Empty() bool {
	return b.X1 <= b.X0 || b.Y1 <= b.Y0
}

// Inset shrinks the box by n pixels on every side. Negative n grows it.
func (b Box) Inset(n int) Box {
	return Box{X0: b.X0 + n, Y0: b.Y0 + n, X1: b.X1 - n, Y1: b.Y1 - n}
}

// Pad grows the box by n pixels on every side.
func (b Box) Pad(n int) Box {
	return b.Inset(-n)
}

// Translate shifts the box by (dx, dy).
func (b Box) Translate(dx, dy int) Box {
	return Box{X0: b.X0 + dx, Y0: b.Y0 + dy, X1: b.X1 + dx, Y1: b.Y1 + dy}
}

// Intersect returns the overlap of two boxes. The result may be empty.
func (b Box) Intersect(o Box) Box {
	r := Box{
		X0: maxInt(b.X0, o.X0),
		Y0: maxInt(b.Y0, o.Y0),
		X1: minInt(b.X1, o.X1),
		Y1: minInt(b.Y1, o.Y1),
	}
	if r.Empty() {
		return Box{}
	}
	return r
}

// Union returns the smallest box containing both boxes.
// Empty boxes are ignored.
func (b Box) Union(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Box{
		X0: minInt(b.X0, o.X0),
		Y0: minInt(b.Y0, o.Y0),
		X1: maxInt(b.X1, o.X1),
		Y1: maxInt(b.Y1, o.Y1),
	}
}

// Contains reports whether o lies entirely inside b.
func (b Box) Contains(o Box) bool {
	return o.X0 >= b.X0 && o.Y0 >= b.Y0 && o.X1 <= b.X1 && o.Y1 <= b.Y1
}

// Center returns the integer center point.
func (b Box) Center() image.Point {
	return image.Point{X: (b.X0 + b.X1) / 2, Y: (b.Y0 + b.Y1) / 2}
}

// Rect converts the box to an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X0, b.Y0, b.X1, b.Y1)
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.X0, b.Y0, b.X1, b.Y1)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
