// Package imaging constrains doodle images to the widget's rendering memory
// budget before they are cached.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// MaxDimension is the display size budget in logical units. Images whose
// longer side exceeds it are scaled down before caching.
const MaxDimension = 500

// Normalize returns image bytes constrained to MaxDimension on the longer
// side, preserving aspect ratio. Input already within the budget is returned
// unchanged, byte for byte. Oversized input is rescaled and re-encoded
// losslessly as PNG.
func Normalize(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= MaxDimension && bounds.Dy() <= MaxDimension {
		return data, nil
	}

	resized := imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode resized image: %w", err)
	}
	return buf.Bytes(), nil
}
