package disease

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScorer struct {
	probs []float64
	err   error
}

func (f *fakeScorer) Score(ctx context.Context, features []float64) ([]float64, error) {
	return f.probs, f.err
}

func testPNG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPredictHealthyCategory(t *testing.T) {
	a := NewAdapter(
		[]string{"Tomato_blight", "Tomato_healthy"},
		&fakeScorer{probs: []float64{0.15, 0.85}},
	)

	result, err := a.Predict(context.Background(), testPNG(t, color.White))
	require.NoError(t, err)

	assert.Equal(t, "healthy", result.Status)
	assert.True(t, result.IsHealthy)
	assert.Equal(t, 0.85, result.Confidence)
	assert.Equal(t, "High", result.ConfidenceLevel)
	assert.Equal(t, "No Disease", result.Disease)
	assert.Contains(t, result.Treatment, "No treatment needed")
	assert.Equal(t, "85.0%", result.Suitability)
}

func TestPredictDiseasedCategory(t *testing.T) {
	a := NewAdapter(
		[]string{"Tomato_blight", "Tomato_healthy"},
		&fakeScorer{probs: []float64{0.7, 0.3}},
	)

	result, err := a.Predict(context.Background(), testPNG(t, color.White))
	require.NoError(t, err)

	assert.Equal(t, "diseased", result.Status)
	assert.False(t, result.IsHealthy)
	assert.Equal(t, "Medium", result.ConfidenceLevel)
	assert.Equal(t, "Plant Disease Detected", result.Disease)
	assert.Contains(t, result.Prevention, "air circulation")
}

func TestPredictHealthyMatchIsCaseInsensitive(t *testing.T) {
	a := NewAdapter(
		[]string{"Potato_HEALTHY", "Potato_scab"},
		&fakeScorer{probs: []float64{0.9, 0.1}},
	)

	result, err := a.Predict(context.Background(), testPNG(t, color.White))
	require.NoError(t, err)
	assert.Equal(t, "healthy", result.Status)
}

func TestPredictRejectsBadImage(t *testing.T) {
	a := NewAdapter([]string{"x"}, &fakeScorer{probs: []float64{1}})
	_, err := a.Predict(context.Background(), []byte("not an image"))
	assert.Error(t, err)
}

func TestPredictCategoryCountMismatch(t *testing.T) {
	a := NewAdapter([]string{"a", "b", "c"}, &fakeScorer{probs: []float64{0.5, 0.5}})
	_, err := a.Predict(context.Background(), testPNG(t, color.White))
	assert.Error(t, err)
}

func TestConfidenceLevelBuckets(t *testing.T) {
	cases := []struct {
		confidence float64
		want       string
	}{
		{0.95, "High"},
		{0.81, "High"},
		{0.8, "Medium"}, // boundary: High needs strictly more than 0.8
		{0.7, "Medium"},
		{0.6, "Low"},
		{0.3, "Low"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ConfidenceLevel(c.confidence), "confidence %v", c.confidence)
	}
}
