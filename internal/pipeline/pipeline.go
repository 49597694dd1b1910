// Package pipeline is the shared request pipeline behind every inference
// route: verified identity in, adapter invocation, best-effort persistence,
// response shaping. Rate limiting and auth run earlier as middleware stages;
// once a request is scored it always gets a response body, even when the
// persistence step fails.
package pipeline

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nhahub/NHA-046/internal/httpx"
	"github.com/nhahub/NHA-046/internal/logger"
	"github.com/nhahub/NHA-046/internal/middleware"
	"github.com/nhahub/NHA-046/internal/store"
	"github.com/nhahub/NHA-046/internal/token"
)

// Inferencer is the adapter stage: it validates the raw payload, scores it
// and shapes both the response and the record to persist. A nil record means
// "nothing to persist" (the response then reports saved_to_database=false).
type Inferencer interface {
	// Name labels the service in not-initialized errors and logs.
	Name() string
	// Ready reports whether startup loaded this adapter's artifacts.
	Ready() bool
	// Collection is the persistence collection for this adapter's results.
	Collection() string
	Infer(r *http.Request, claims *token.Claims) (payload map[string]any, record store.Record, err *httpx.Error)
}

// Inference builds the handler for one inference route. The shape is
// identical across services; only the adapter and collection differ.
func Inference(inf Inferencer, predictions *store.Predictions) http.HandlerFunc {
	log := logger.Named("pipeline")
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFrom(r.Context())
		if claims == nil {
			httpx.WriteError(w, httpx.Auth("No authorization token provided"))
			return
		}

		if !inf.Ready() {
			httpx.WriteError(w, httpx.NotInitialized(inf.Name()+" not initialized"))
			return
		}

		payload, record, herr := inf.Infer(r, claims)
		if herr != nil {
			if herr.Status >= 500 {
				log.Error("inference failed",
					zap.String("service", inf.Name()),
					zap.String("user_id", claims.UserID),
					zap.String("reason", herr.Message))
			}
			httpx.WriteError(w, herr)
			return
		}

		// Persistence is best-effort: inference success is never held hostage
		// to storage availability.
		saved := false
		if record != nil {
			if err := predictions.Save(r.Context(), inf.Collection(), claims.UserID, record); err != nil {
				log.Warn("result not recorded",
					zap.String("service", inf.Name()),
					zap.String("user_id", claims.UserID),
					zap.Error(err))
			} else {
				saved = true
			}
		}
		payload["saved_to_database"] = saved

		httpx.WriteJSON(w, http.StatusOK, payload)
	}
}
