// internal/imagefx/transform.go
//
// Builds the partial, blurred preview shown to the player.
// Pipeline: flatten to RGB → random crop window → Lanczos upsample back to
// the source dimensions → Gaussian blur (skipped when the radius is 0).
//
// The source image is never modified. Only the crop offset is random;
// the window size and blur radius depend on the level alone.

package imagefx

import (
	"image"
	"image/draw"

	"github.com/disintegration/gift"
	"github.com/nfnt/resize"

	"github.com/robalobadob/logoquiz/internal/random"
)

// Transform returns the preview of img for level.
func Transform(img image.Image, level int, d Difficulty, rng random.Source) *image.RGBA {
	src := Flatten(img)
	b := src.Bounds()
	if b.Empty() {
		return src
	}

	win := CropWindow(b, d.Fraction(level), rng)
	crop := src.SubImage(win)

	scaled := resize.Resize(uint(b.Dx()), uint(b.Dy()), crop, resize.Lanczos3)
	out := toRGBA(scaled)

	radius := d.BlurRadius(level)
	if radius <= 0 {
		return out
	}
	g := gift.New(gift.GaussianBlur(float32(radius)))
	blurred := image.NewRGBA(g.Bounds(out.Bounds()))
	g.Draw(blurred, out)
	return blurred
}

// CropWindow picks a window of fraction*width by fraction*height inside b.
// The top-left corner is uniform over every position where the window fits.
func CropWindow(b image.Rectangle, fraction float64, rng random.Source) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	cw := max(1, min(w, int(float64(w)*fraction)))
	ch := max(1, min(h, int(float64(h)*fraction)))

	left := rng.Intn(w-cw+1)
	top := rng.Intn(h-ch+1)

	tl := b.Min.Add(image.Pt(left, top))
	return image.Rectangle{Min: tl, Max: tl.Add(image.Pt(cw, ch))}
}

// Flatten converts img to opaque RGB, compositing any transparency onto black.
// The result always starts at the origin.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// toRGBA returns img as *image.RGBA anchored at the origin.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
