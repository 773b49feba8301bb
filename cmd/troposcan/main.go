package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/troposcan/detection-service/internal/adapter/http"
	kafkaadapter "github.com/troposcan/detection-service/internal/adapter/kafka"
	"github.com/troposcan/detection-service/internal/config"
	"github.com/troposcan/detection-service/internal/observability"
	"github.com/troposcan/detection-service/internal/pipeline"
	"github.com/troposcan/detection-service/internal/samples"
	"github.com/troposcan/detection-service/internal/segmentation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Try the real segmentation model first; fall back to the brightness
	// threshold when the artifact is missing or the runtime fails to load.
	var provider segmentation.Provider
	onnx, err := segmentation.NewONNXProvider(cfg.ModelPath)
	if err != nil {
		provider = segmentation.NewFallbackProvider()
		metrics.ModelLoaded.Set(0)
		logger.Warn("segmentation model unavailable, using brightness fallback",
			"path", cfg.ModelPath, "error", err)
	} else {
		provider = onnx
		metrics.ModelLoaded.Set(1)
		logger.Info("segmentation model loaded", "path", cfg.ModelPath)
	}

	store := samples.NewStore(cfg.SamplesDir)
	detector := pipeline.New(provider, store, logger, metrics)

	// Alert publishing is feature-flagged via KAFKA_ALERTS_ENABLED.
	var alerter httpadapter.Alerter
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaAlertsEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger, metrics)
		alerter = publisher
		logger.Info("kafka alerting enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAlertTopic)
	} else {
		logger.Info("kafka alerting disabled")
	}

	info := httpadapter.ModelInfo{
		ModelType:   provider.Type(),
		ModelPath:   cfg.ModelPath,
		ModelLoaded: onnx != nil,
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, detector, store, alerter, info, cfg.RequestTimeout, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}
	if onnx != nil {
		onnx.Close()
	}

	logger.Info("shutdown complete")
}
