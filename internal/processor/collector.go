package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"prosody-eval-go/internal/config"
	"prosody-eval-go/internal/dataset"
	"prosody-eval-go/internal/extractor"
	"prosody-eval-go/internal/logger"
	"prosody-eval-go/internal/report"
	"prosody-eval-go/internal/types"
)

// CollectSummary counts what a collector run did.
type CollectSummary struct {
	Files      int `json:"files"`
	Outputs    int `json:"outputs"`
	Pending    int `json:"pending"`
	Duplicates int `json:"duplicates"`
	Processed  int `json:"processed"`
	Fallbacks  int `json:"fallbacks"`
	Failed     int `json:"failed"`
}

// Collector sends pending annotation files to a Generator and stores each
// reply as <OutputDir>/<base>.json.
type Collector struct {
	Cfg         config.Collector
	Instruction string
	Gen         extractor.Generator
	Log         *logger.Logger
	Out         io.Writer

	mu sync.Mutex
}

// Run processes every pending file once. Per-file failures are reported and
// skipped; only setup failures and cancellation are returned.
func (c *Collector) Run(ctx context.Context) (CollectSummary, error) {
	var sum CollectSummary
	log := c.Log.WithField("input_dir", c.Cfg.InputDir).WithField("output_dir", c.Cfg.OutputDir)

	if err := os.MkdirAll(c.Cfg.OutputDir, 0o755); err != nil {
		return sum, fmt.Errorf("create output dir: %w", err)
	}
	files, err := dataset.Enumerate(c.Cfg.InputDir, c.Cfg.Suffix)
	if err != nil {
		return sum, err
	}
	done, err := dataset.DoneBases(c.Cfg.OutputDir)
	if err != nil {
		return sum, err
	}
	pending, dups := dataset.Pending(files, done, c.Cfg.Suffix)
	for _, d := range dups {
		log.WithField("path", d).Warn("skipping file with duplicate base name")
	}

	sum.Files, sum.Outputs, sum.Pending, sum.Duplicates = len(files), len(done), len(pending), len(dups)
	report.CollectPlan(c.Out, sum.Files, sum.Outputs, sum.Pending)
	log.WithField("files", sum.Files).WithField("pending", sum.Pending).Info("collection planned")

	workers := c.Cfg.Workers
	if workers < 1 {
		workers = 1
	}
	// Cancellation stops new files from starting; files already sent to the
	// model run to completion, bounded by the generator's request timeout.
	itemCtx := context.WithoutCancel(ctx)
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, path := range pending {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// SetLimit may have held this file back while the run was cancelled.
			if ctx.Err() != nil {
				return nil
			}
			res := c.ProcessFile(itemCtx, path)
			c.record(&sum, res)
			return nil
		})
	}
	_ = g.Wait()

	log.WithField("processed", sum.Processed).
		WithField("failed", sum.Failed).
		WithField("fallbacks", sum.Fallbacks).
		Info("collection finished")
	return sum, ctx.Err()
}

func (c *Collector) record(sum *CollectSummary, res types.FileResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if res.Error != "" {
		sum.Failed++
		report.Failed(c.Out, res.Path, errors.New(res.Error))
		return
	}
	sum.Processed++
	if res.Fallback {
		sum.Fallbacks++
	}
	report.Processed(c.Out, res.Path)
}

// ProcessFile reads one annotation file, asks the model to rate it and
// writes the record. On error nothing is left in the output dir.
func (c *Collector) ProcessFile(ctx context.Context, path string) types.FileResult {
	start := time.Now()
	base := dataset.BaseName(path, c.Cfg.Suffix)
	res := types.FileResult{Path: path, Base: base}
	log := c.Log.WithField("path", path)

	fail := func(stage string, err error) types.FileResult {
		res.Error = fmt.Sprintf("%s: %v", stage, err)
		res.DurationMs = time.Since(start).Milliseconds()
		log.WithField("stage", stage).WithField("error", err.Error()).Warn("file failed")
		return res
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return fail("read", err)
	}
	reply, err := c.Gen.Generate(ctx, c.Instruction, string(text))
	if err != nil {
		return fail("generate", err)
	}
	rec, fallback, err := extractor.BuildRecord(reply)
	if err != nil {
		return fail("encode", err)
	}
	if fallback {
		log.Debug("reply is not JSON, storing raw text")
	}

	out := filepath.Join(c.Cfg.OutputDir, base+".json")
	if err := writeAtomic(out, rec); err != nil {
		return fail("write", err)
	}
	res.OutputPath = out
	res.Fallback = fallback
	res.DurationMs = time.Since(start).Milliseconds()
	log.WithField("duration_ms", res.DurationMs).Info("file processed")
	return res
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
