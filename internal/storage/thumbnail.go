package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	thumbMaxWidth  = 300
	thumbMaxHeight = 300
	thumbQuality   = 85
)

// ImageThumbnailer renders 300x300-bounded JPEG thumbnails.
type ImageThumbnailer struct{}

// NewImageThumbnailer creates a thumbnailer for uploaded photos.
func NewImageThumbnailer() *ImageThumbnailer {
	return &ImageThumbnailer{}
}

// Thumbnail decodes the image, fits it inside the bounding box and
// re-encodes as JPEG. All thumbnails are JPEG regardless of source type.
func (t *ImageThumbnailer) Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fit(img, thumbMaxWidth, thumbMaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(thumbQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
