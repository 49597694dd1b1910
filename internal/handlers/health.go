package handlers

import (
	"net/http"

	"github.com/nhahub/NHA-046/internal/httpx"
	"github.com/nhahub/NHA-046/internal/store"
)

// Home is the unauthenticated root endpoint. It reports configuration flags
// only and never fails.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Flora Prediction API 🌿",
		"version": "1.0.0",
		"status":  "running",
		"model_loaded": map[string]bool{
			"crop":    h.crop != nil,
			"disease": h.disease != nil,
		},
		"supabase_connected": h.store.Configured(),
		"endpoints": map[string]string{
			"health":    "/health (GET)",
			"register":  "/register (POST)",
			"login":     "/login (POST)",
			"recommend": "/recommend (POST) - requires auth",
			"predict":   "/predict (POST) - requires auth",
			"history":   "/history (GET) - requires auth",
		},
	})
}

// Health reports readiness flags plus a live store probe. It answers even
// when startup left the models unloaded.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"model_initialized": map[string]bool{
			"crop":    h.crop != nil,
			"disease": h.disease != nil,
		},
		"supabase_connected": h.store.Ping(r.Context(), store.CropCollection),
	})
}
