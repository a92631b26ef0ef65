package imaging

import (
	"image"
	"image/color"
)

// Raster is a two-valued (ink/background) image.
//
// Pixels are addressed with bounds-checked accessors: reading outside the
// raster yields background and writing outside it is a no-op. A Raster is
// owned by whichever stage allocated it; stages that only read a raster never
// modify it.
type Raster struct {
	width  int
	height int
	ink    []bool
}

// NewRaster allocates an all-background raster. Negative dimensions are
// treated as zero.
func NewRaster(width, height int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Raster{
		width:  width,
		height: height,
		ink:    make([]bool, width*height),
	}
}

// RasterFromImage reads an already two-valued image: pixels darker than
// mid-gray become ink. Use Binarize for photographs.
func RasterFromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := NewRaster(b.Dx(), b.Dy())
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			if Luma(img.At(b.Min.X+x, b.Min.Y+y)) < 128 {
				r.ink[y*r.width+x] = true
			}
		}
	}
	return r
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.height }

// Bounds returns the box covering the whole raster.
func (r *Raster) Bounds() Box {
	return Box{X1: r.width, Y1: r.height}
}

// In reports whether (x, y) addresses a pixel of the raster.
func (r *Raster) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.width && y < r.height
}

// Ink reports whether the pixel at (x, y) is ink.
func (r *Raster) Ink(x, y int) bool {
	if !r.In(x, y) {
		return false
	}
	return r.ink[y*r.width+x]
}

// Set marks the pixel at (x, y) as ink or background.
func (r *Raster) Set(x, y int, ink bool) {
	if !r.In(x, y) {
		return
	}
	r.ink[y*r.width+x] = ink
}

// Fill sets every pixel inside b.
func (r *Raster) Fill(b Box, ink bool) {
	b = b.Intersect(r.Bounds())
	for y := b.Y0; y < b.Y1; y++ {
		row := r.ink[y*r.width : (y+1)*r.width]
		for x := b.X0; x < b.X1; x++ {
			row[x] = ink
		}
	}
}

// Crop copies the pixels inside b into a newly allocated raster of size
// b.Dx() x b.Dy(). Parts of b that fall outside the raster are background,
// so Crop doubles as a padding operation.
func (r *Raster) Crop(b Box) *Raster {
	if b.Empty() {
		return NewRaster(0, 0)
	}
	out := NewRaster(b.Dx(), b.Dy())
	src := b.Intersect(r.Bounds())
	for y := src.Y0; y < src.Y1; y++ {
		for x := src.X0; x < src.X1; x++ {
			if r.ink[y*r.width+x] {
				out.ink[(y-b.Y0)*out.width+(x-b.X0)] = true
			}
		}
	}
	return out
}

// CountInk returns the number of ink pixels inside b.
func (r *Raster) CountInk(b Box) int {
	b = b.Intersect(r.Bounds())
	n := 0
	for y := b.Y0; y < b.Y1; y++ {
		row := r.ink[y*r.width : (y+1)*r.width]
		for x := b.X0; x < b.X1; x++ {
			if row[x] {
				n++
			}
		}
	}
	return n
}

// InkBounds returns the tight bounding box of all ink pixels inside b.
// The second result is false when b holds no ink.
func (r *Raster) InkBounds(b Box) (Box, bool) {
	b = b.Intersect(r.Bounds())
	out := Box{X0: b.X1, Y0: b.Y1, X1: b.X0, Y1: b.Y0}
	found := false
	for y := b.Y0; y < b.Y1; y++ {
		for x := b.X0; x < b.X1; x++ {
			if !r.ink[y*r.width+x] {
				continue
			}
			found = true
			out.X0 = minInt(out.X0, x)
			out.Y0 = minInt(out.Y0, y)
			out.X1 = maxInt(out.X1, x+1)
			out.Y1 = maxInt(out.Y1, y+1)
		}
	}
	if !found {
		return Box{}, false
	}
	return out, true
}

// Clone returns an independent copy.
func (r *Raster) Clone() *Raster {
	out := &Raster{width: r.width, height: r.height, ink: make([]bool, len(r.ink))}
	copy(out.ink, r.ink)
	return out
}

// Equal reports whether both rasters have the same size and pixels.
func (r *Raster) Equal(o *Raster) bool {
	if r.width != o.width || r.height != o.height {
		return false
	}
	for i := range r.ink {
		if r.ink[i] != o.ink[i] {
			return false
		}
	}
	return true
}

// Image renders the raster as black ink on a white background.
func (r *Raster) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.width, r.height))
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			v := uint8(255)
			if r.ink[y*r.width+x] {
				v = 0
			}
			img.Pix[y*img.Stride+x] = v
		}
	}
	return img
}

// Luma converts a color to 8-bit luminance with integer Rec. 601 weights
// (77/150/29 out of 256).
func Luma(c color.Color) uint8 {
	r, g, b, _ := c.RGBA()
	return uint8((77*(r>>8) + 150*(g>>8) + 29*(b>>8)) >> 8)
}
