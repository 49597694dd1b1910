package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nhahub/NHA-046/internal/config"
	"github.com/nhahub/NHA-046/internal/crop"
	"github.com/nhahub/NHA-046/internal/disease"
	"github.com/nhahub/NHA-046/internal/handlers"
	"github.com/nhahub/NHA-046/internal/logger"
	"github.com/nhahub/NHA-046/internal/middleware"
	"github.com/nhahub/NHA-046/internal/routes"
	"github.com/nhahub/NHA-046/internal/scorer"
	"github.com/nhahub/NHA-046/internal/services"
	"github.com/nhahub/NHA-046/internal/store"
	"github.com/nhahub/NHA-046/internal/token"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	logger.Init(logger.Config{
		Env:         cfg.Environment,
		Level:       cfg.LogLevel,
		ServiceName: "flora-backend",
	})
	defer logger.Sync()
	log := logger.L()

	if envErr != nil {
		log.Info("no .env file found, using platform environment")
	}

	log.Info("🌿 Flora Prediction API starting",
		zap.Bool("supabase_configured", cfg.SupabaseURL != "" && cfg.SupabaseKey != ""),
		zap.String("env", cfg.Environment))

	client := store.NewClient(cfg.SupabaseURL, cfg.SupabaseKey)
	tokens := token.NewService(cfg.JWTSecret)

	// Startup is single-threaded: load artifacts now, or mark the affected
	// service degraded. A degraded service still answers health/home and
	// rejects its inference route with a not-initialized error.
	cropAdapter := loadCropAdapter(cfg, log)
	diseaseAdapter := loadDiseaseAdapter(cfg, log)
	images := buildImageStore(cfg, client, log)

	h := handlers.New(client, tokens, cropAdapter, diseaseAdapter, images)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.IsProduction() {
		r.Use(middleware.SecurityHeaders)
	}

	routes.Setup(r, h)

	log.Info("🚀 server listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

func loadCropAdapter(cfg *config.Config, log *zap.Logger) *crop.Adapter {
	scaler, err := crop.LoadScaler(cfg.ArtifactPath("scaler.json"))
	if err != nil {
		log.Error("crop model not initialized", zap.Error(err))
		return nil
	}
	labels, err := crop.LoadLabels(cfg.ArtifactPath("crop_labels.json"))
	if err != nil {
		log.Error("crop model not initialized", zap.Error(err))
		return nil
	}
	if cfg.CropScorerURL == "" {
		log.Error("crop model not initialized", zap.Error(errors.New("CROP_SCORER_URL not set")))
		return nil
	}
	log.Info("✅ crop model initialized",
		zap.Int("features", len(scaler.Columns)),
		zap.Int("classes", len(labels)))
	return crop.NewAdapter(scaler, labels, scorer.NewHTTPScorer(cfg.CropScorerURL))
}

func loadDiseaseAdapter(cfg *config.Config, log *zap.Logger) *disease.Adapter {
	categories, err := disease.LoadCategories(cfg.ArtifactPath("categories.json"))
	if err != nil {
		log.Error("disease model not initialized", zap.Error(err))
		return nil
	}
	if cfg.DiseaseScorerURL == "" {
		log.Error("disease model not initialized", zap.Error(errors.New("DISEASE_SCORER_URL not set")))
		return nil
	}
	log.Info("✅ disease model initialized", zap.Int("categories", len(categories)))
	return disease.NewAdapter(categories, scorer.NewHTTPScorer(cfg.DiseaseScorerURL))
}

// buildImageStore prefers Cloudinary when its credentials are present, else
// the remote store's object storage. Image uploads stay best-effort either way.
func buildImageStore(cfg *config.Config, client *store.Client, log *zap.Logger) store.ImageStore {
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cld, err := services.NewCloudinaryStore(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Warn("cloudinary unavailable, falling back to store storage", zap.Error(err))
		} else {
			log.Info("✅ cloudinary image store initialized")
			return cld
		}
	}
	if !client.Configured() {
		log.Warn("no image store configured; predictions will not be persisted with images")
		return nil
	}
	return store.NewStorage(client)
}
