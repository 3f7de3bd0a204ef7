package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/seller-loop/studio/internal/bedrock"
	"github.com/seller-loop/studio/internal/config"
	"github.com/seller-loop/studio/internal/handlers"
	"github.com/seller-loop/studio/internal/refdata"
	"github.com/seller-loop/studio/internal/services"
	"github.com/seller-loop/studio/internal/storage"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Optional .env for local development
	_ = godotenv.Load()

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().Msg("Starting Seller Studio API")

	cfg := config.Load()

	model, err := bedrock.NewClient(context.Background(), cfg.BedrockRegion)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Bedrock client")
	}

	var storageClient *storage.Client
	if cfg.S3Bucket != "" {
		storageClient, err = storage.NewClient(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3Bucket,
			cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3PublicURL,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize storage client")
		}
	}

	loader := refdata.NewLoader(cfg.DataDir)
	files := services.NewFileService(cfg.SaveDir, cfg.MaxFileSize, storageClient)
	studio := services.NewStudioService(loader, model, files, cfg)

	h := handlers.NewHandler(studio)

	r := mux.NewRouter()
	api := r.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/reference/products/{asin}", h.GetProduct).Methods("GET")
	api.HandleFunc("/reference/reviews/{asin}", h.GetReviews).Methods("GET")
	api.HandleFunc("/listing", h.CreateListing).Methods("POST")
	api.HandleFunc("/voc/report", h.CreateVocReport).Methods("POST")
	api.HandleFunc("/voc/aspects/{aspect}", h.CreateVocAspect).Methods("POST")
	api.HandleFunc("/images/generate", h.GenerateImage).Methods("POST")
	api.HandleFunc("/images/vary", h.VaryImage).Methods("POST")
	api.HandleFunc("/images/background-removal", h.RemoveBackground).Methods("POST")
	api.HandleFunc("/prompts/optimize", h.OptimizePrompt).Methods("POST")
	api.HandleFunc("/invoices/extract", h.ExtractInvoice).Methods("POST")

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // image generation calls are slow
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
}
