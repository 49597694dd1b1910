package crop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScorer struct {
	probs []float64
	err   error
	calls int
	last  []float64
}

func (f *fakeScorer) Score(ctx context.Context, features []float64) ([]float64, error) {
	f.calls++
	f.last = features
	return f.probs, f.err
}

func identityScaler(columns ...string) *Scaler {
	mean := make([]float64, len(columns))
	scale := make([]float64, len(columns))
	for i := range scale {
		scale[i] = 1
	}
	return &Scaler{Columns: columns, Mean: mean, Scale: scale}
}

var testObservation = Observation{
	Nitrogen: 90, Phosphorus: 42, Potassium: 43,
	Temperature: 20.8, Humidity: 82, PH: 6.5, Rainfall: 202.9,
}

func TestRecommendTopClass(t *testing.T) {
	sc := &fakeScorer{probs: []float64{0.1, 0.7, 0.2}}
	a := NewAdapter(identityScaler("N", "P", "K"), []string{"rice", "maize", "cotton"}, sc)

	result, err := a.Recommend(context.Background(), testObservation)
	require.NoError(t, err)

	assert.Equal(t, "maize", result.Crop)
	assert.Equal(t, 0.7, result.Confidence)
	assert.Equal(t, "70.0%", result.Suitability)
	assert.InDelta(t, 90.0/42.0, result.ProcessedFeatures["NP_Ratio"], 1e-9)
	assert.Equal(t, 82.0, result.InputSummary["humidity"])
}

func TestRecommendTieKeepsLowestIndex(t *testing.T) {
	sc := &fakeScorer{probs: []float64{0.4, 0.4, 0.2}}
	a := NewAdapter(identityScaler("N"), []string{"rice", "maize", "cotton"}, sc)

	result, err := a.Recommend(context.Background(), testObservation)
	require.NoError(t, err)
	assert.Equal(t, "rice", result.Crop)
}

func TestRecommendIsDeterministic(t *testing.T) {
	sc := &fakeScorer{probs: []float64{0.25, 0.75}}
	a := NewAdapter(identityScaler("N", "P"), []string{"rice", "maize"}, sc)

	first, err := a.Recommend(context.Background(), testObservation)
	require.NoError(t, err)
	second, err := a.Recommend(context.Background(), testObservation)
	require.NoError(t, err)

	assert.Equal(t, first.Crop, second.Crop)
	assert.Equal(t, first.Confidence, second.Confidence)
}

func TestRecommendScalesBeforeScoring(t *testing.T) {
	sc := &fakeScorer{probs: []float64{1}}
	scaler := &Scaler{Columns: []string{"N"}, Mean: []float64{50}, Scale: []float64{10}}
	a := NewAdapter(scaler, []string{"rice"}, sc)

	_, err := a.Recommend(context.Background(), testObservation)
	require.NoError(t, err)
	assert.Equal(t, []float64{(90.0 - 50) / 10}, sc.last)
}

func TestRecommendScorerError(t *testing.T) {
	sc := &fakeScorer{err: errors.New("model server down")}
	a := NewAdapter(identityScaler("N"), []string{"rice"}, sc)

	_, err := a.Recommend(context.Background(), testObservation)
	assert.Error(t, err)
}

func TestRecommendLabelMismatch(t *testing.T) {
	sc := &fakeScorer{probs: []float64{0.5, 0.5}}
	a := NewAdapter(identityScaler("N"), []string{"rice"}, sc)

	_, err := a.Recommend(context.Background(), testObservation)
	assert.Error(t, err)
}
