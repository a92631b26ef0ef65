// Package ocr recognises single puzzle glyphs.
//
// Two engines implement Classifier:
//
//   - TemplateClassifier compares a glyph against reference bitmaps named
//     A.bmp, A_1.bmp .. A_19.bmp, B.bmp and so on. Both images are stretched
//     to 32x32 and the score is the fraction of agreeing pixels. Scores
//     under 0.65 give '?'.
//   - TesseractClassifier runs Tesseract (via gosseract/v2) in single
//     character mode with an A-Z whitelist. It needs a local Tesseract
//     install and language data.
//
// Glyphs should already be cropped to their ink, as detection.TrimToInk
// does for grid cells.
package ocr
