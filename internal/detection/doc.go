// Package detection locates the structure of a printed word-search page
// and cuts it into glyph images.
//
// # Pipeline
//
// Extractor.Extract runs the stages in a fixed order, each consuming the
// output of the previous one:
//
//  1. binarize: Isodata threshold, optional median denoise (imaging.Binarize)
//  2. deskew: projection-variance angle sweep, then rotation
//  3. grid: ruling detection from row and column ink profiles
//  4. cells: one raster per grid square, inset away from the rulings
//  5. word region: the margin around the grid holding the most ink
//  6. lines: row-profile bands of the word region
//  7. words: column-profile runs of each line
//  8. letters: connected components of each word, wide ones split
//
// Stages that can fall back to a looser heuristic do so through a Ladder.
// When the ladder is exhausted the stage returns a *StageError naming the
// stage and one of four kinds: LoadError, InsufficientStructure,
// DimensionError or MemoryError. Match kinds with errors.Is against ErrLoad,
// ErrInsufficientStructure, ErrDimension and ErrMemory.
//
// # Coordinate System
//
// All boxes use image coordinates: origin at the top-left, X rightward, Y
// downward, inclusive minimum and exclusive maximum. Grid and word-region
// boxes refer to the deskewed raster, word boxes to the word-region raster
// and letter boxes to the padded word image.
//
// # Limitations
//
// The heuristics assume a clean print: a fully ruled grid, dark ink on a
// light background and the word list in a single margin. Skew beyond
// DeskewOptions.MaxAngle is not corrected.
package detection
