package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropResult contains the cropped image data
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts box from img, optionally scaling the crop, and returns it
// as a base64 PNG.
func Crop(img image.Image, box Box, scale float64) (*CropResult, error) {
	cropped, err := CropImage(img, box, scale)
	if err != nil {
		return nil, err
	}

	encoded, err := EncodePNGBase64(cropped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// CropImage extracts box from img. A scale other than 1 resizes the crop
// with a Lanczos filter.
func CropImage(img image.Image, box Box, scale float64) (*image.NRGBA, error) {
	bounds := BoxFromRect(img.Bounds())
	if !bounds.Contains(box) {
		return nil, fmt.Errorf("crop region %s outside image bounds %s", box, bounds)
	}
	if box.Empty() {
		return nil, fmt.Errorf("invalid crop region %s: x0 must be < x1, y0 must be < y1", box)
	}

	cropped := imaging.Crop(img, box.Rect())

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 {
			newWidth = 1
		}
		if newHeight < 1 {
			newHeight = 1
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}
	return cropped, nil
}
