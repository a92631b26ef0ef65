// Package imaging provides the pixel-level operations of the word-search
// pipeline: decoding source images, binarizing them into ink/background
// rasters, rotating, cropping and rendering overlays.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions (Box), (X0,Y0) is inclusive and (X1,Y1) is exclusive
//
// # Rasters
//
// Raster is the two-valued image every detection stage works on. Its
// accessors are bounds-checked: reads outside the raster return background
// and writes outside it are ignored, so stages never do stride arithmetic
// themselves. Crop always allocates a new raster.
//
// # Binarization
//
// Binarize converts luma, computed with integer weights 77/150/29, to ink
// with a global Ridler-Calvard (isodata) threshold. Ink is luma <= threshold.
// An optional 3x3 per-channel median filter runs first when the image looks
// noisy.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Rasters are not synchronized; a
// raster being read by one goroutine must not be written by another.
package imaging
