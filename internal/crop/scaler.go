package crop

import (
	"encoding/json"
	"fmt"
	"os"
)

// Scaler is the fitted standard-scaling transform exported from training.
// Columns fixes the feature order the model expects; Mean and Scale are
// per-column.
type Scaler struct {
	Columns []string  `json:"columns"`
	Mean    []float64 `json:"mean"`
	Scale   []float64 `json:"scale"`
}

// LoadScaler reads the scaler artifact from disk.
func LoadScaler(path string) (*Scaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scaler: %w", err)
	}
	var s Scaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scaler: %w", err)
	}
	if len(s.Columns) == 0 || len(s.Mean) != len(s.Columns) || len(s.Scale) != len(s.Columns) {
		return nil, fmt.Errorf("scaler: inconsistent artifact (%d columns, %d means, %d scales)",
			len(s.Columns), len(s.Mean), len(s.Scale))
	}
	return &s, nil
}

// Transform orders the derived features into the model's column order and
// applies (x - mean) / scale.
func (s *Scaler) Transform(features map[string]float64) ([]float64, error) {
	out := make([]float64, len(s.Columns))
	for i, col := range s.Columns {
		v, ok := features[col]
		if !ok {
			return nil, fmt.Errorf("scaler: missing feature %q", col)
		}
		out[i] = (v - s.Mean[i]) / s.Scale[i]
	}
	return out, nil
}
