package preprocess

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/gift"
	"golang.org/x/image/draw"
)

// ErrInvalidCrop is returned when a crop rectangle does not overlap the image.
var ErrInvalidCrop = errors.New("crop rectangle outside of the image")

// Rect is a crop rectangle in source pixel coordinates.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Rotate turns img clockwise by deg degrees. The canvas grows to fit the
// rotated image and uncovered corners are black.
func Rotate(img image.Image, deg int) image.Image {
	deg = ((deg % 360) + 360) % 360

	var f gift.Filter
	switch deg {
	case 0:
		return img
	case 90:
		f = gift.Rotate270()
	case 180:
		f = gift.Rotate180()
	case 270:
		f = gift.Rotate90()
	default:
		f = gift.Rotate(float32(-deg), color.Black, gift.CubicInterpolation)
	}

	g := gift.New(f)
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// Crop cuts r out of img. The rectangle is clamped to the image bounds.
func Crop(img image.Image, r Rect) (image.Image, error) {
	b := img.Bounds()
	rect := image.Rect(b.Min.X+r.X, b.Min.Y+r.Y, b.Min.X+r.X+r.W, b.Min.Y+r.Y+r.H).Intersect(b)
	if r.W <= 0 || r.H <= 0 || rect.Empty() {
		return nil, fmt.Errorf("%w: %+v in %dx%d", ErrInvalidCrop, r, b.Dx(), b.Dy())
	}

	g := gift.New(gift.Crop(rect))
	dst := image.NewNRGBA(g.Bounds(b))
	g.Draw(dst, img)
	return dst, nil
}

// CenterCrop returns the largest centered rectangle of an imgW x imgH image
// with the aspect ratio of a gridW x gridH grid.
func CenterCrop(imgW, imgH, gridW, gridH int) Rect {
	if imgW <= 0 || imgH <= 0 || gridW <= 0 || gridH <= 0 {
		return Rect{W: imgW, H: imgH}
	}

	target := float64(gridW) / float64(gridH)
	w, h := imgW, imgH
	if float64(imgW)/float64(imgH) > target {
		w = int(math.Round(float64(imgH) * target))
	} else {
		h = int(math.Round(float64(imgW) / target))
	}

	return Rect{
		X: (imgW - w) / 2,
		Y: (imgH - h) / 2,
		W: max(1, w),
		H: max(1, h),
	}
}

// ResizeToGrid scales img to exactly w x h pixels with bicubic interpolation.
func ResizeToGrid(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	draw.CatmullRom.Scale(
		dst,
		dst.Bounds(),
		img,
		img.Bounds(),
		draw.Src,
		nil,
	)

	return dst
}

// Upscale enlarges img by an integer factor without smoothing so that every
// cell stays a sharp square.
func Upscale(img image.Image, factor int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// UpscaleToHeight is like Upscale with the factor picked so that the result
// is about height pixels tall.
func UpscaleToHeight(img image.Image, height int) *image.RGBA {
	b := img.Bounds()
	if b.Dy() == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	w := int(math.Round(float64(b.Dx()) * float64(height) / float64(b.Dy())))
	dst := image.NewRGBA(image.Rect(0, 0, w, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
