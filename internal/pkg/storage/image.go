package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

// SlipProcessor normalizes uploaded payment slips.
type SlipProcessor struct {
	maxWidth  int
	maxHeight int
}

// NewSlipProcessor creates a processor that bounds slips to the given box.
func NewSlipProcessor(maxWidth, maxHeight int) *SlipProcessor {
	return &SlipProcessor{maxWidth: maxWidth, maxHeight: maxHeight}
}

// Normalize decodes a slip image, fits it into the configured bounding box
// and re-encodes it as JPEG. Re-encoding strips whatever the customer's
// phone embedded in the original file.
func (p *SlipProcessor) Normalize(content io.Reader) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode slip image: %w", err)
	}

	fitted := imaging.Fit(img, p.maxWidth, p.maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, fitted, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode slip image: %w", err)
	}

	return buf, nil
}
