package preprocess

import (
	"fmt"
	"image"
	"io"

	// The following are all image formats accepted for uploads.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// Additional image formats from the x repository.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads an uploaded image in any of the supported formats. It returns
// the image and the name of its format.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("error decoding image: %w", err)
	}

	if b := img.Bounds(); b.Empty() {
		return nil, "", fmt.Errorf("image %s has no pixels", format)
	}

	return img, format, nil
}
