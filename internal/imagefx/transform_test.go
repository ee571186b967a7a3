package imagefx

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/robalobadob/logoquiz/internal/random"
)

func TestFraction(t *testing.T) {
	d := DefaultDifficulty()
	tests := []struct {
		level    int
		expected float64
	}{
		{1, 0.5},
		{2, 0.43},
		{3, 0.36},
		{4, 0.3},
		{5, 0.3},
		{20, 0.3},
	}
	for _, tc := range tests {
		got := d.Fraction(tc.level)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Fraction(%d) = %v, expected %v", tc.level, got, tc.expected)
		}
	}
}

func TestBlurRadius(t *testing.T) {
	d := DefaultDifficulty()
	tests := []struct {
		level    int
		expected int
	}{
		{1, 0},
		{2, 2},
		{3, 4},
		{5, 8},
		{6, 10},
		{7, 10},
		{50, 10},
	}
	for _, tc := range tests {
		if got := d.BlurRadius(tc.level); got != tc.expected {
			t.Errorf("BlurRadius(%d) = %d, expected %d", tc.level, got, tc.expected)
		}
	}
}

func TestDifficultyMonotonic(t *testing.T) {
	d := DefaultDifficulty()
	for level := 1; level < 100; level++ {
		if d.Fraction(level+1) > d.Fraction(level) {
			t.Fatalf("Fraction increased between level %d and %d", level, level+1)
		}
		if d.Fraction(level) < 0.3 {
			t.Fatalf("Fraction(%d) below floor: %v", level, d.Fraction(level))
		}
		if d.BlurRadius(level+1) < d.BlurRadius(level) {
			t.Fatalf("BlurRadius decreased between level %d and %d", level, level+1)
		}
		if d.BlurRadius(level) > 10 {
			t.Fatalf("BlurRadius(%d) above cap: %d", level, d.BlurRadius(level))
		}
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultDifficulty().Validate(); err != nil {
		t.Fatalf("default difficulty invalid: %v", err)
	}
	bad := DefaultDifficulty()
	bad.CropMin = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero crop_min")
	}
	bad = DefaultDifficulty()
	bad.CropStart = 1.5
	if err := bad.Validate(); err == nil {
		t.Error("expected error for crop_start above 1")
	}
}

func TestCropWindowFits(t *testing.T) {
	b := image.Rect(10, 20, 110, 80)
	rng := random.New(7)
	for i := 0; i < 500; i++ {
		win := CropWindow(b, 0.3, rng)
		if !win.In(b) {
			t.Fatalf("window %v outside bounds %v", win, b)
		}
		if win.Dx() != 30 || win.Dy() != 18 {
			t.Fatalf("window size = %dx%d, expected 30x18", win.Dx(), win.Dy())
		}
	}
}

func TestCropWindowTinyImage(t *testing.T) {
	win := CropWindow(image.Rect(0, 0, 1, 1), 0.3, random.New(1))
	if win != image.Rect(0, 0, 1, 1) {
		t.Errorf("expected full 1x1 window, got %v", win)
	}
}

func TestSeedsChangeOffsetNotFormulas(t *testing.T) {
	b := image.Rect(0, 0, 200, 200)
	d := DefaultDifficulty()
	offsets := map[image.Point]bool{}
	for seed := int64(1); seed <= 20; seed++ {
		win := CropWindow(b, d.Fraction(2), random.New(seed))
		offsets[win.Min] = true
		if win.Dx() != 86 || win.Dy() != 86 {
			t.Fatalf("seed %d: window size %dx%d, expected 86x86", seed, win.Dx(), win.Dy())
		}
	}
	if len(offsets) < 2 {
		t.Errorf("expected different seeds to produce different offsets, got %v", offsets)
	}
}

func TestTransformKeepsDimensions(t *testing.T) {
	src := checkerboard(64, 48, 8)
	for _, level := range []int{1, 2, 5, 9} {
		out := Transform(src, level, DefaultDifficulty(), random.New(int64(level)))
		if out.Bounds() != image.Rect(0, 0, 64, 48) {
			t.Errorf("level %d: bounds = %v, expected 64x48", level, out.Bounds())
		}
	}
}

func TestTransformDoesNotModifySource(t *testing.T) {
	src := checkerboard(32, 32, 4)
	before := append([]uint8(nil), src.Pix...)
	Transform(src, 4, DefaultDifficulty(), random.New(3))
	for i := range before {
		if src.Pix[i] != before[i] {
			t.Fatal("source image was modified")
		}
	}
}

func TestTransformUniformImageAtLevelOne(t *testing.T) {
	fill := color.RGBA{R: 200, G: 40, B: 90, A: 255}
	src := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = fill.R, fill.G, fill.B, fill.A
	}
	out := Transform(src, 1, DefaultDifficulty(), random.New(1))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if c := out.RGBAAt(x, y); c != fill {
				t.Fatalf("pixel (%d,%d) = %v, expected %v", x, y, c, fill)
			}
		}
	}
}

func TestTransformBlursAboveLevelOne(t *testing.T) {
	// Constant fraction so both calls see the same crop window.
	d := DefaultDifficulty()
	d.CropStep = 0
	src := checkerboard(64, 64, 8)

	sharp := Transform(src, 1, d, random.New(11))
	blurred := Transform(src, 3, d, random.New(11))

	differs := false
	for i := range sharp.Pix {
		if sharp.Pix[i] != blurred.Pix[i] {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("expected level 3 preview to differ from level 1 preview")
	}
}

func TestFlattenDropsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 7))
	src.SetNRGBA(5, 5, color.NRGBA{R: 255, A: 255})
	src.SetNRGBA(6, 6, color.NRGBA{G: 255, A: 0})

	out := Flatten(src)
	if out.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v, expected origin-anchored 2x2", out.Bounds())
	}
	if c := out.RGBAAt(0, 0); c != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("opaque pixel = %v", c)
	}
	if c := out.RGBAAt(1, 1); c != (color.RGBA{A: 255}) {
		t.Errorf("transparent pixel = %v, expected opaque black", c)
	}
}

func TestDataURI(t *testing.T) {
	uri, err := DataURI(checkerboard(4, 4, 2))
	if err != nil {
		t.Fatalf("DataURI() failed: %v", err)
	}
	const prefix = "data:image/png;base64,"
	if len(uri) <= len(prefix) || uri[:len(prefix)] != prefix {
		t.Errorf("unexpected data URI prefix: %q", uri)
	}
	if empty, _ := DataURI(nil); empty != "" {
		t.Errorf("DataURI(nil) = %q, expected empty", empty)
	}
}

func checkerboard(w, h, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{A: 255})
			}
		}
	}
	return img
}
