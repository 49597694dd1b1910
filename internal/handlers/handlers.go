package handlers

import (
	"go.uber.org/zap"

	"github.com/nhahub/NHA-046/internal/crop"
	"github.com/nhahub/NHA-046/internal/disease"
	"github.com/nhahub/NHA-046/internal/logger"
	"github.com/nhahub/NHA-046/internal/store"
	"github.com/nhahub/NHA-046/internal/token"
)

// Handlers bundles the explicitly constructed collaborators for every route.
// Model adapters may be nil when startup failed to load their artifacts; the
// service still answers health/home and rejects inference routes.
type Handlers struct {
	store       *store.Client
	users       *store.Users
	predictions *store.Predictions
	tokens      *token.Service
	crop        *crop.Adapter
	disease     *disease.Adapter
	images      store.ImageStore
	log         *zap.Logger
}

func New(client *store.Client, tokens *token.Service, cropAdapter *crop.Adapter, diseaseAdapter *disease.Adapter, images store.ImageStore) *Handlers {
	return &Handlers{
		store:       client,
		users:       store.NewUsers(client),
		predictions: store.NewPredictions(client),
		tokens:      tokens,
		crop:        cropAdapter,
		disease:     diseaseAdapter,
		images:      images,
		log:         logger.Named("handlers"),
	}
}

// Predictions exposes the record repo for pipeline wiring.
func (h *Handlers) Predictions() *store.Predictions {
	return h.predictions
}

// Tokens exposes the token service for auth middleware wiring.
func (h *Handlers) Tokens() *token.Service {
	return h.tokens
}
