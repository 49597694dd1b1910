// Package disease classifies a plant image as healthy or diseased and
// enriches the prediction with static advisory text.
package disease

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/nhahub/NHA-046/internal/scorer"
)

// Result is one enriched classification.
type Result struct {
	Status          string  `json:"status"` // "healthy" or "diseased"
	Confidence      float64 `json:"confidence"`
	IsHealthy       bool    `json:"is_healthy"`
	Disease         string  `json:"disease"`
	Treatment       string  `json:"treatment"`
	Prevention      string  `json:"prevention"`
	Advice          string  `json:"advice"`
	ConfidenceLevel string  `json:"confidence_level"`
	Suitability     string  `json:"suitability"`
}

// Adapter holds the ordered category list loaded at startup and the scorer.
// Read-only after construction, shared by all requests.
type Adapter struct {
	categories []string
	scorer     scorer.Scorer
}

func NewAdapter(categories []string, sc scorer.Scorer) *Adapter {
	return &Adapter{categories: categories, scorer: sc}
}

// LoadCategories reads the ordered category artifact; its order must match
// the scorer's output distribution.
func LoadCategories(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}
	var categories []string
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("categories: empty artifact")
	}
	return categories, nil
}

// Predict preprocesses raw image bytes, scores them and maps the top
// category to a healthy/diseased status.
func (a *Adapter) Predict(ctx context.Context, imageData []byte) (*Result, error) {
	tensor, err := Preprocess(imageData)
	if err != nil {
		return nil, err
	}

	probs, err := a.scorer.Score(ctx, tensor)
	if err != nil {
		return nil, err
	}
	if len(probs) != len(a.categories) {
		return nil, fmt.Errorf("disease scorer: %d probabilities for %d categories", len(probs), len(a.categories))
	}

	top := scorer.ArgMax(probs)
	confidence := probs[top]

	// A plant is healthy iff the winning category's label says so.
	healthy := strings.Contains(strings.ToLower(a.categories[top]), "healthy")

	r := &Result{
		Confidence:  confidence,
		IsHealthy:   healthy,
		Suitability: fmt.Sprintf("%.1f%%", confidence*100),
	}
	if healthy {
		r.Status = "healthy"
	} else {
		r.Status = "diseased"
	}
	enrich(r)
	return r, nil
}
