package container

import (
	"context"
	"log/slog"

	"github.com/FACorreiaa/go-tour-chapters/app/observability/metrics"
	"github.com/FACorreiaa/go-tour-chapters/config"
	"github.com/FACorreiaa/go-tour-chapters/internal/api/candidate"
	"github.com/FACorreiaa/go-tour-chapters/internal/api/chapter"
	generativeAI "github.com/FACorreiaa/go-tour-chapters/internal/api/generative_ai"
	"github.com/FACorreiaa/go-tour-chapters/internal/api/reality"
	"github.com/FACorreiaa/go-tour-chapters/internal/api/validation"
	"github.com/FACorreiaa/go-tour-chapters/internal/api/venue"
	"github.com/FACorreiaa/go-tour-chapters/internal/cache"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *slog.Logger
	Oracle         generativeAI.Oracle
	Store          cache.Store
	ChapterHandler *chapter.Handler
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	// Initialize the external oracle client
	oracle, err := generativeAI.NewAIClientWithModel(ctx, cfg.Oracle.Model)
	if err != nil {
		logger.Error("Failed to initialize oracle client", slog.Any("error", err))
		return nil, err
	}

	appMetrics := metrics.Get()
	oracle.WithMetrics(appMetrics)
	store := cache.NewMemoryStore(cfg.Cache.TTL)

	// Initialize pipeline services
	classifier := venue.NewClassifier(logger)
	source := candidate.NewOracleSource(oracle, logger)
	validator := validation.NewService(oracle, logger)
	verifier := reality.NewVerifier(oracle, logger)

	chapterService := chapter.NewService(classifier, source, validator, verifier, store, appMetrics, logger)
	chapterHandler := chapter.NewHandler(chapterService, appMetrics, logger)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Oracle:         oracle,
		Store:          store,
		ChapterHandler: chapterHandler,
	}, nil
}
