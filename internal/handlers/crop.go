package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/nhahub/NHA-046/internal/crop"
	"github.com/nhahub/NHA-046/internal/httpx"
	"github.com/nhahub/NHA-046/internal/pipeline"
	"github.com/nhahub/NHA-046/internal/store"
	"github.com/nhahub/NHA-046/internal/token"
)

var cropParams = []string{"nitrogen", "phosphorus", "potassium", "temperature", "humidity", "ph", "rainfall"}

// CropInferencer adapts the crop recommender to the request pipeline.
type CropInferencer struct {
	h *Handlers
}

func (h *Handlers) Crop() *CropInferencer { return &CropInferencer{h: h} }

func (c *CropInferencer) Name() string       { return "Crop model" }
func (c *CropInferencer) Ready() bool        { return c.h.crop != nil }
func (c *CropInferencer) Collection() string { return store.CropCollection }

func (c *CropInferencer) Infer(r *http.Request, claims *token.Claims) (map[string]any, store.Record, *httpx.Error) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil || raw == nil {
		return nil, nil, httpx.Validation("No JSON data provided")
	}

	values := make(map[string]float64, len(cropParams))
	for _, param := range cropParams {
		v, ok := raw[param]
		if !ok {
			return nil, nil, httpx.Validation("Missing parameter: " + param)
		}
		f, err := toFloat(v)
		if err != nil {
			return nil, nil, httpx.Validation("Invalid parameter type: " + param)
		}
		values[param] = f
	}

	obs := crop.Observation{
		Nitrogen:    values["nitrogen"],
		Phosphorus:  values["phosphorus"],
		Potassium:   values["potassium"],
		Temperature: values["temperature"],
		Humidity:    values["humidity"],
		PH:          values["ph"],
		Rainfall:    values["rainfall"],
	}

	// Range checks run before any scoring work.
	if obs.Humidity < 0 || obs.Humidity > 100 {
		return nil, nil, httpx.Validation("Humidity must be between 0 and 100")
	}
	if obs.PH < 0 || obs.PH > 14 {
		return nil, nil, httpx.Validation("pH must be between 0 and 14")
	}

	result, err := c.h.crop.Recommend(r.Context(), obs)
	if err != nil {
		return nil, nil, httpx.Upstream("Prediction failed")
	}

	payload := map[string]any{
		"crop":               result.Crop,
		"confidence":         result.Confidence,
		"suitability":        result.Suitability,
		"processed_features": result.ProcessedFeatures,
		"input_summary":      result.InputSummary,
	}
	record := store.Record{
		"nitrogen":          obs.Nitrogen,
		"phosphorus":        obs.Phosphorus,
		"potassium":         obs.Potassium,
		"temperature":       obs.Temperature,
		"humidity":          obs.Humidity,
		"ph_level":          obs.PH,
		"rainfall":          obs.Rainfall,
		"recommended_crop":  result.Crop,
		"suitability_level": result.Suitability,
		"match_percentage":  result.Confidence * 100,
	}
	return payload, record, nil
}

// toFloat accepts JSON numbers and numeric strings, matching the lenient
// coercion clients already rely on. Non-finite values are rejected: a string
// "NaN" parses, but NaN compares false against every range bound and cannot
// be encoded in the JSON response.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, strconv.ErrSyntax
		}
		return f, nil
	default:
		return 0, strconv.ErrSyntax
	}
}

var _ pipeline.Inferencer = (*CropInferencer)(nil)
