package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "relate/internal/server/middleware"
	"relate/internal/util"
	"relate/pkg/graph"
	"relate/pkg/logger"
	"relate/pkg/ner"
	"relate/pkg/wikidata"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := buildApp()
	if err != nil {
		logger.Fatal("Failed to initialize pipeline", "err", err)
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

func buildApp() (*mid.App, error) {
	aiClient, err := util.NewExtractAIClient()
	if err != nil {
		return nil, err
	}

	extractor := ner.NewAIExtractor(ner.NewAIExtractorParams{
		Client:     aiClient,
		Encoder:    util.GetEnvString("TOKEN_ENCODER", "o200k_base"),
		MaxTokens:  int(util.GetEnvNumeric("MAX_UNIT_TOKENS", 2000)),
		MaxRetries: int(util.GetEnvNumeric("MAX_RETRIES", 3)),
		Parallel:   int(util.GetEnvNumeric("PARALLEL_LOOKUPS", 8)),
	})

	kg := wikidata.NewClient(wikidata.NewClientParams{
		BaseURL: util.GetEnv("WIKIDATA_URL"),
		Timeout: time.Duration(util.GetEnvNumeric("WIKIDATA_TIMEOUT_SECONDS", 10)) * time.Second,
	})

	graphClient := graph.NewGraphClient(graph.NewGraphClientParams{
		KG:                  kg,
		SimilarityThreshold: util.GetEnvNumeric("SIMILARITY_THRESHOLD", 0),
		ParallelLookups:     int(util.GetEnvNumeric("PARALLEL_LOOKUPS", 8)),
		MaxRetries:          int(util.GetEnvNumeric("MAX_RETRIES", 3)),
	})

	return &mid.App{
		Extractor: extractor,
		Graph:     graphClient,
	}, nil
}
