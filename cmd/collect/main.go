package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"prosody-eval-go/internal/config"
	"prosody-eval-go/internal/extractor"
	"prosody-eval-go/internal/logger"
	"prosody-eval-go/internal/processor"
)

func main() {
	_ = godotenv.Load() // loads .env

	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "optional YAML config file")
	inputDir := flag.String("in", "", "directory scanned for annotation files")
	outputDir := flag.String("out", "", "directory receiving <base>.json responses")
	suffix := flag.String("suffix", "", "annotation file name suffix")
	workers := flag.Int("workers", 0, "files processed concurrently")
	flag.Parse()

	log := logger.New().WithRun("collector")

	file, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	cfg := file.Collector
	if *inputDir != "" {
		cfg.InputDir = *inputDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *suffix != "" {
		cfg.Suffix = *suffix
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid collector config")
	}

	instruction, err := extractor.LoadInstruction(cfg.PromptFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load prompt")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, closeGen, err := extractor.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to create generator")
	}
	defer closeGen()

	log.WithField("provider", cfg.Provider).WithField("model", cfg.Model).Info("starting collection")
	c := &processor.Collector{
		Cfg:         cfg,
		Instruction: instruction,
		Gen:         gen,
		Log:         log,
		Out:         os.Stdout,
	}
	if _, err := c.Run(ctx); err != nil {
		closeGen()
		log.WithError(err).Fatal("collection aborted")
	}
}
