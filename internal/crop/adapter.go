// Package crop turns a validated agronomic observation into a single crop
// recommendation: derive the engineered features, scale them, score, and
// keep only the top class.
package crop

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nhahub/NHA-046/internal/scorer"
)

// Result is the structured recommendation for one observation.
// Only the top-1 class is ever reported; that is a deliberate restriction of
// the adapter, not of the scorer.
type Result struct {
	Crop              string             `json:"crop"`
	Confidence        float64            `json:"confidence"`
	Suitability       string             `json:"suitability"`
	ProcessedFeatures map[string]float64 `json:"processed_features"`
	InputSummary      map[string]float64 `json:"input_summary"`
}

// Adapter holds the read-only artifacts loaded at startup plus the scorer.
// Safe for concurrent use: nothing here mutates after construction.
type Adapter struct {
	scaler *Scaler
	labels []string
	scorer scorer.Scorer
}

func NewAdapter(scaler *Scaler, labels []string, sc scorer.Scorer) *Adapter {
	return &Adapter{scaler: scaler, labels: labels, scorer: sc}
}

// LoadLabels reads the ordered class label artifact. Index i of the scorer's
// distribution corresponds to labels[i].
func LoadLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("labels: empty artifact")
	}
	return labels, nil
}

// Recommend scores one observation and returns the top recommendation.
func (a *Adapter) Recommend(ctx context.Context, obs Observation) (*Result, error) {
	features := DeriveFeatures(obs)

	scaled, err := a.scaler.Transform(features)
	if err != nil {
		return nil, err
	}

	probs, err := a.scorer.Score(ctx, scaled)
	if err != nil {
		return nil, err
	}
	if len(probs) != len(a.labels) {
		return nil, fmt.Errorf("crop scorer: %d probabilities for %d labels", len(probs), len(a.labels))
	}

	top := scorer.ArgMax(probs)
	confidence := probs[top]

	return &Result{
		Crop:              a.labels[top],
		Confidence:        confidence,
		Suitability:       fmt.Sprintf("%.1f%%", confidence*100),
		ProcessedFeatures: features,
		InputSummary:      obs.Summary(),
	}, nil
}
