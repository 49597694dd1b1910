package handlers

import (
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/nhahub/NHA-046/internal/disease"
	"github.com/nhahub/NHA-046/internal/httpx"
	"github.com/nhahub/NHA-046/internal/pipeline"
	"github.com/nhahub/NHA-046/internal/store"
	"github.com/nhahub/NHA-046/internal/token"
)

const maxImageSize = 10 << 20 // 10MB

// DiseaseInferencer adapts the disease classifier to the request pipeline.
type DiseaseInferencer struct {
	h *Handlers
}

func (h *Handlers) Disease() *DiseaseInferencer { return &DiseaseInferencer{h: h} }

func (d *DiseaseInferencer) Name() string       { return "Model" }
func (d *DiseaseInferencer) Ready() bool        { return d.h.disease != nil }
func (d *DiseaseInferencer) Collection() string { return store.DiseaseCollection }

func (d *DiseaseInferencer) Infer(r *http.Request, claims *token.Claims) (map[string]any, store.Record, *httpx.Error) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		return nil, nil, httpx.Validation("No file provided")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, httpx.Validation("No file provided")
	}
	defer file.Close()

	if header.Filename == "" {
		return nil, nil, httpx.Validation("No file selected")
	}

	ext := ""
	if idx := strings.LastIndex(header.Filename, "."); idx != -1 {
		ext = strings.ToLower(header.Filename[idx+1:])
	}
	if !disease.AllowedExtensions[ext] {
		return nil, nil, httpx.Validation("Invalid file type. Use PNG, JPG, or WEBP")
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, nil, httpx.Validation("File must be an image")
	}

	imageData, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, httpx.Validation("No file provided")
	}

	// Upload is best-effort; a failed upload still gets a prediction, but
	// the record is only persisted when the image has a URL to point at.
	imageURL, uploadErr := "", error(nil)
	if d.h.images != nil {
		imageURL, _, uploadErr = d.h.images.UploadImage(r.Context(), claims.UserID, ext, contentType, imageData)
	}
	if uploadErr != nil {
		d.h.log.Warn("image upload failed", zap.String("user_id", claims.UserID), zap.Error(uploadErr))
	}

	result, err := d.h.disease.Predict(r.Context(), imageData)
	if err != nil {
		return nil, nil, httpx.Upstream("Prediction failed")
	}

	payload := map[string]any{
		"status":           result.Status,
		"confidence":       result.Confidence,
		"is_healthy":       result.IsHealthy,
		"disease":          result.Disease,
		"treatment":        result.Treatment,
		"prevention":       result.Prevention,
		"advice":           result.Advice,
		"confidence_level": result.ConfidenceLevel,
		"suitability":      result.Suitability,
	}

	if imageURL == "" {
		payload["image_url"] = nil
		if uploadErr != nil {
			payload["upload_error"] = uploadErr.Error()
		} else {
			payload["upload_error"] = "image storage not configured"
		}
		return payload, nil, nil
	}

	payload["image_url"] = imageURL

	diseaseDetected := "Disease Detected"
	if result.IsHealthy {
		diseaseDetected = "Healthy"
	}
	record := store.Record{
		"image_url":                imageURL,
		"image_path":               disease.ObjectName(claims.UserID, "jpg"),
		"is_healthy":               result.IsHealthy,
		"confidence":               result.Confidence,
		"disease_detected":         diseaseDetected,
		"treatment_recommendation": result.Treatment,
		"prevention_tips":          result.Prevention,
	}
	return payload, record, nil
}

var _ pipeline.Inferencer = (*DiseaseInferencer)(nil)
