package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"prosody-eval-go/internal/config"
	"prosody-eval-go/internal/logger"
	"prosody-eval-go/internal/processor"
)

func main() {
	_ = godotenv.Load() // loads .env

	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "optional YAML config file")
	responsesDir := flag.String("responses", "", "directory holding <base>.json responses")
	groundTruth := flag.String("truth", "", "averaged annotation table (.csv or .xlsx)")
	audioExt := flag.String("audio-ext", "", "extension stripped from ground truth names")
	reportPath := flag.String("report", "", "optional .xlsx report path")
	flag.Parse()

	log := logger.New().WithRun("scorer")

	file, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	cfg := file.Scorer
	if *responsesDir != "" {
		cfg.ResponsesDir = *responsesDir
	}
	if *groundTruth != "" {
		cfg.GroundTruthPath = *groundTruth
	}
	if *audioExt != "" {
		cfg.AudioExt = *audioExt
	}
	if *reportPath != "" {
		cfg.ReportPath = *reportPath
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid scorer config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &processor.Scorer{Cfg: cfg, Log: log, Out: os.Stdout}
	if _, err := s.Run(ctx); err != nil {
		log.WithError(err).Fatal("scoring failed")
	}
}
