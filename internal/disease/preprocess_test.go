package disease

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessShapeAndNormalization(t *testing.T) {
	// A uniform white image makes the normalized values exact.
	img := image.NewRGBA(image.Rect(0, 0, 50, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 50; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	tensor, err := Preprocess(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, tensor, 3*128*128)

	plane := 128 * 128
	for c, want := range []float64{
		(1.0 - 0.485) / 0.229,
		(1.0 - 0.456) / 0.224,
		(1.0 - 0.406) / 0.225,
	} {
		// JPEG is lossy, so allow a small wobble around the exact value.
		assert.InDelta(t, want, tensor[c*plane], 0.05, "channel %d", c)
		assert.InDelta(t, want, tensor[c*plane+plane/2], 0.05, "channel %d center", c)
	}
}

func TestPreprocessRejectsGarbage(t *testing.T) {
	_, err := Preprocess([]byte{0x00, 0x01, 0x02})
	assert.Error(t, err)
}

func TestAllowedExtensions(t *testing.T) {
	for _, ext := range []string{"png", "jpg", "jpeg", "webp"} {
		assert.True(t, AllowedExtensions[ext], ext)
	}
	for _, ext := range []string{"gif", "bmp", "svg", "exe", ""} {
		assert.False(t, AllowedExtensions[ext], ext)
	}
}
