// internal/imagefx/difficulty.go
//
// Difficulty curve for the logo preview.
// Two knobs scale with the level:
//   - Fraction:   share of width/height kept as the visible window.
//   - BlurRadius: Gaussian blur applied after upsampling.
//
// Defaults:
//   fraction(L) = max(0.3, 0.5 - 0.07*(L-1))
//   blur(L)     = clamp(2*(L-1), 0, 10)

package imagefx

import "fmt"

// Difficulty holds the parameters of both curves.
type Difficulty struct {
	CropStart float64 `yaml:"crop_start"` // fraction at level 1
	CropStep  float64 `yaml:"crop_step"`  // fraction lost per level
	CropMin   float64 `yaml:"crop_min"`   // floor, some content is always visible
	BlurStep  int     `yaml:"blur_step"`  // radius gained per level
	BlurMax   int     `yaml:"blur_max"`   // radius cap
}

// DefaultDifficulty returns the stock curve.
func DefaultDifficulty() Difficulty {
	return Difficulty{
		CropStart: 0.5,
		CropStep:  0.07,
		CropMin:   0.3,
		BlurStep:  2,
		BlurMax:   10,
	}
}

// Fraction returns the visible window fraction for level.
// Monotonically non-increasing, never below CropMin.
func (d Difficulty) Fraction(level int) float64 {
	return max(d.CropMin, d.CropStart-d.CropStep*float64(level-1))
}

// BlurRadius returns the blur radius for level, clamped to [0, BlurMax].
func (d Difficulty) BlurRadius(level int) int {
	return min(max((level-1)*d.BlurStep, 0), d.BlurMax)
}

// Validate rejects curves that could produce an empty or oversized window.
func (d Difficulty) Validate() error {
	switch {
	case d.CropMin <= 0 || d.CropMin > 1:
		return fmt.Errorf("imagefx: crop_min must be in (0, 1], got %v", d.CropMin)
	case d.CropStart < d.CropMin || d.CropStart > 1:
		return fmt.Errorf("imagefx: crop_start must be in [crop_min, 1], got %v", d.CropStart)
	case d.CropStep < 0:
		return fmt.Errorf("imagefx: crop_step must not be negative, got %v", d.CropStep)
	case d.BlurStep < 0 || d.BlurMax < 0:
		return fmt.Errorf("imagefx: blur_step and blur_max must not be negative")
	}
	return nil
}
