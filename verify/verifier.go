package verify

import (
	"image"
	"strings"

	"github.com/mimiclabs/mimic/config"
	"github.com/mimiclabs/mimic/logger"
	"go.uber.org/zap"
)

// Verifier captures screen frames and judges whether a step had its
// intended effect. Both calls must be safe from the executor goroutine and
// must return deterministically even on missing frames.
type Verifier interface {
	CaptureFrame() image.Image
	Compare(hint string, before, after image.Image) bool
}

// NoopVerifier is used in headless mode: no frames, every check passes.
type NoopVerifier struct{}

var _ Verifier = NoopVerifier{}

func (NoopVerifier) CaptureFrame() image.Image { return nil }

func (NoopVerifier) Compare(hint string, before, after image.Image) bool {
	logger.Debug("skipping verification (headless mode)", zap.String("hint", hint))
	return true
}

// PixelDiffVerifier compares grayscale screenshots. A pixel counts as
// changed when its delta exceeds pixelThreshold; the changed-pixel ratio
// against changeRatio decides whether the screen "changed".
type PixelDiffVerifier struct {
	capture        func() image.Image
	pixelThreshold int
	changeRatio    float64
}

var _ Verifier = new(PixelDiffVerifier)

func NewPixelDiffVerifier(capture func() image.Image, conf config.AutomationConfig) *PixelDiffVerifier {
	return &PixelDiffVerifier{
		capture:        capture,
		pixelThreshold: conf.PixelDiffThreshold,
		changeRatio:    conf.ChangeRatio,
	}
}

func (v *PixelDiffVerifier) CaptureFrame() image.Image {
	if v.capture == nil {
		return nil
	}
	return v.capture()
}

// Compare returns whether the observed change matches the hint. Hints
// containing "no_change" expect a stable screen; every other hint expects
// a visible change. Missing frames fail verification.
func (v *PixelDiffVerifier) Compare(hint string, before, after image.Image) bool {
	if before == nil || after == nil {
		return false
	}
	ratio := v.changedRatio(before, after)
	if strings.Contains(strings.ToLower(hint), "no_change") {
		return ratio < v.changeRatio
	}
	return ratio > v.changeRatio
}

func (v *PixelDiffVerifier) changedRatio(before, after image.Image) float64 {
	bounds := before.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}
	changed := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			delta := gray(before, x, y) - gray(after, x, y)
			if delta < 0 {
				delta = -delta
			}
			if delta > v.pixelThreshold {
				changed++
			}
		}
	}
	return float64(changed) / float64(total)
}

func gray(img image.Image, x, y int) int {
	r, g, b, _ := img.At(x, y).RGBA()
	// luma approximation over 8-bit channels
	return int((299*(r>>8) + 587*(g>>8) + 114*(b>>8)) / 1000)
}
