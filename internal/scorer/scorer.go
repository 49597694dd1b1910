// Package scorer defines the opaque scoring capability behind both inference
// adapters. The production implementation posts a prepared feature vector to
// a model-serving endpoint; tests substitute fakes.
package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Scorer returns a probability per class for a prepared feature vector.
// Implementations must be safe for concurrent use.
type Scorer interface {
	Score(ctx context.Context, features []float64) ([]float64, error)
}

const scoreTimeout = 10 * time.Second

// HTTPScorer scores through a remote model server. The request carries the
// already-normalized inputs; the server answers with the full class
// distribution. A bounded timeout keeps one slow score from pinning a worker.
type HTTPScorer struct {
	url  string
	http *http.Client
}

func NewHTTPScorer(url string) *HTTPScorer {
	return &HTTPScorer{
		url:  url,
		http: &http.Client{Timeout: scoreTimeout},
	}
}

type scoreRequest struct {
	Inputs []float64 `json:"inputs"`
}

type scoreResponse struct {
	Probabilities []float64 `json:"probabilities"`
}

func (s *HTTPScorer) Score(ctx context.Context, features []float64) ([]float64, error) {
	body, err := json.Marshal(scoreRequest{Inputs: features})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model server: status %d", resp.StatusCode)
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("model server: %w", err)
	}
	if len(out.Probabilities) == 0 {
		return nil, fmt.Errorf("model server: empty distribution")
	}
	return out.Probabilities, nil
}

// ArgMax returns the index of the highest probability. Ties keep the lowest
// index, matching the scorer's label ordering.
func ArgMax(probs []float64) int {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return best
}
