package handlers

import (
	"net/http"
	"sort"

	"go.uber.org/zap"

	"github.com/nhahub/NHA-046/internal/httpx"
	"github.com/nhahub/NHA-046/internal/middleware"
	"github.com/nhahub/NHA-046/internal/store"
)

const historyCap = 20

// History returns the caller's most recent persisted records, newest first.
// ?type=crop or ?type=disease narrows to one collection; without it both
// histories are merged and capped.
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	if claims == nil {
		httpx.WriteError(w, httpx.Auth("No authorization token provided"))
		return
	}

	switch r.URL.Query().Get("type") {
	case "crop":
		records, err := h.predictions.History(r.Context(), store.CropCollection, claims.UserID)
		if err != nil {
			h.historyError(w, err)
			return
		}
		h.writeHistory(w, anyRecords(records))
	case "disease":
		records, err := h.predictions.History(r.Context(), store.DiseaseCollection, claims.UserID)
		if err != nil {
			h.historyError(w, err)
			return
		}
		h.writeHistory(w, diseaseHistoryItems(records))
	default:
		cropRecords, err := h.predictions.History(r.Context(), store.CropCollection, claims.UserID)
		if err != nil {
			h.historyError(w, err)
			return
		}
		diseaseRecords, err := h.predictions.History(r.Context(), store.DiseaseCollection, claims.UserID)
		if err != nil {
			h.historyError(w, err)
			return
		}
		h.writeHistory(w, mergeHistories(cropRecords, diseaseRecords))
	}
}

func (h *Handlers) historyError(w http.ResponseWriter, err error) {
	h.log.Error("history fetch failed", zap.Error(err))
	httpx.WriteError(w, httpx.Upstream("Failed to fetch history"))
}

func (h *Handlers) writeHistory(w http.ResponseWriter, items []map[string]any) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"history": items,
		"count":   len(items),
	})
}

func anyRecords(records []store.Record) []map[string]any {
	items := make([]map[string]any, 0, len(records))
	for _, r := range records {
		items = append(items, map[string]any(r))
	}
	return items
}

// diseaseHistoryItems reshapes stored rows to the fixed response field set.
func diseaseHistoryItems(records []store.Record) []map[string]any {
	items := make([]map[string]any, 0, len(records))
	for _, r := range records {
		items = append(items, map[string]any{
			"id":               r["id"],
			"image_url":        r.String("image_url"),
			"disease_detected": r.String("disease_detected"),
			"is_healthy":       r["is_healthy"],
			"confidence":       r.Float("confidence"),
			"created_at":       r.String("created_at"),
			"treatment":        r.String("treatment_recommendation"),
			"prevention":       r.String("prevention_tips"),
		})
	}
	return items
}

// mergeHistories interleaves both collections newest first, tagging each
// entry with its kind, capped at the shared history limit.
func mergeHistories(cropRecords, diseaseRecords []store.Record) []map[string]any {
	merged := make([]map[string]any, 0, len(cropRecords)+len(diseaseRecords))
	for _, r := range cropRecords {
		item := map[string]any(r)
		item["kind"] = "crop"
		merged = append(merged, item)
	}
	for _, item := range diseaseHistoryItems(diseaseRecords) {
		item["kind"] = "disease"
		merged = append(merged, item)
	}
	// created_at is RFC 3339, so string order is time order.
	sort.SliceStable(merged, func(i, j int) bool {
		a, _ := merged[i]["created_at"].(string)
		b, _ := merged[j]["created_at"].(string)
		return a > b
	})
	if len(merged) > historyCap {
		merged = merged[:historyCap]
	}
	return merged
}
