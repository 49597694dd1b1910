package config

import (
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	Port           string
	Environment    string   // ENV: production, development, etc.
	LogLevel       string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)

	SupabaseURL string // base URL of the remote data store
	SupabaseKey string // service credential attached to every store call
	JWTSecret   string

	// Model artifacts, loaded once at startup.
	ModelDir         string // directory holding scaler.json, crop_labels.json, categories.json
	CropScorerURL    string // model server endpoint for the crop recommender
	DiseaseScorerURL string // model server endpoint for the disease classifier

	// Optional Cloudinary image store; Supabase storage is used when unset.
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	return &Config{
		Port:           getEnv("PORT", "7860"),
		Environment:    env,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: allowedOrigins,

		// Stray whitespace in these broke deployments before; always trim.
		SupabaseURL: strings.TrimSpace(getEnv("SUPABASE_URL", "")),
		SupabaseKey: strings.TrimSpace(getEnv("SUPABASE_ANON_KEY", "")),
		JWTSecret:   strings.TrimSpace(getEnv("JWT_SECRET", "fallback-secret-key")),

		ModelDir:         getEnv("MODEL_DIR", "artifacts"),
		CropScorerURL:    getEnv("CROP_SCORER_URL", ""),
		DiseaseScorerURL: getEnv("DISEASE_SCORER_URL", ""),

		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
	}
}

// ArtifactPath resolves a model artifact file name inside ModelDir.
func (c *Config) ArtifactPath(name string) string {
	return filepath.Join(c.ModelDir, name)
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
