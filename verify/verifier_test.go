package verify

import (
	"image"
	"image/color"
	"testing"

	"github.com/mimiclabs/mimic/config"
	"github.com/stretchr/testify/require"
)

func uniformImage(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPixelDiffVerifier(t *testing.T) {
	v := NewPixelDiffVerifier(nil, config.Default().Automation)
	white := uniformImage(color.White)
	black := uniformImage(color.Black)

	for scenario, fn := range map[string]func(t *testing.T){
		"change expected and screen changed": func(t *testing.T) {
			require.True(t, v.Compare("screenshot_comparison", white, black))
		},
		"change expected but screen stable": func(t *testing.T) {
			require.False(t, v.Compare("screenshot_comparison", white, uniformImage(color.White)))
		},
		"no change expected and screen stable": func(t *testing.T) {
			require.True(t, v.Compare("no_change", white, uniformImage(color.White)))
		},
		"no change expected but screen changed": func(t *testing.T) {
			require.False(t, v.Compare("no_change", white, black))
		},
		"missing frames fail": func(t *testing.T) {
			require.False(t, v.Compare("screenshot_comparison", nil, black))
			require.False(t, v.Compare("screenshot_comparison", white, nil))
		},
	} {
		t.Run(scenario, fn)
	}
}

func TestNoopVerifier(t *testing.T) {
	v := NoopVerifier{}
	require.Nil(t, v.CaptureFrame())
	require.True(t, v.Compare("screenshot_comparison", nil, nil))
}
