package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/embeddings"
	"github.com/jonathan/talent-match/internal/retrieval"
	"github.com/jonathan/talent-match/internal/scoring"
	"github.com/jonathan/talent-match/internal/vectorstore"
)

// dependencies bundles the wired collaborators behind a retrieval service.
type dependencies struct {
	service  *retrieval.Service
	database *db.DB
	vectors  *vectorstore.Client
	embedder embeddings.Provider
	redis    *redis.Client
}

// loadConfig merges defaults, the optional config file, and environment
// variables in ascending precedence.
func loadConfig(configPath string) (config.Config, error) {
	cfg := config.Defaults()

	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded.MergeWithDefaults(cfg)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildDependencies connects the database, embedding provider, optional
// Redis cache, and vector store, and assembles the retrieval service.
func buildDependencies(ctx context.Context, cfg config.Config, log *zap.Logger) (*dependencies, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	gemini, err := embeddings.NewGeminiProvider(ctx, cfg.APIKey, embeddings.DefaultModel)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}

	deps := &dependencies{database: database, embedder: gemini}
	if cfg.RedisAddr != "" {
		deps.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		deps.embedder = embeddings.NewCachedProvider(gemini, deps.redis, embeddings.DefaultCacheTTL, log)
	}

	deps.vectors = vectorstore.NewClient(cfg.ChromaURL, deps.embedder, log)

	weights := scoring.DefaultWeights()
	if cfg.WeightsFile != "" {
		weights = scoring.LoadWeights(cfg.WeightsFile, log)
	}

	deps.service = retrieval.New(deps.vectors, database, retrieval.Config{
		JobCollection:       cfg.JobCollection,
		CandidateCollection: cfg.CandidateCollection,
		Weights:             weights,
	}, log)

	return deps, nil
}

// close releases the connections held by the dependency bundle.
func (d *dependencies) close() {
	if d.embedder != nil {
		_ = d.embedder.Close()
	}
	if d.redis != nil {
		_ = d.redis.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}
