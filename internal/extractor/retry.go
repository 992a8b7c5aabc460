package extractor

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"prosody-eval-go/internal/logger"
)

// Retrying retries Next with exponential backoff. MaxRetries counts retries
// after the first attempt; zero means a single attempt.
type Retrying struct {
	Next           Generator
	MaxRetries     int
	MaxElapsed     time.Duration
	AttemptTimeout time.Duration
	// InitialInterval overrides the backoff start; zero keeps the library default.
	InitialInterval time.Duration
	Log             *logger.Logger
}

func (r *Retrying) Generate(ctx context.Context, instruction, document string) (string, error) {
	var (
		out     string
		attempt int
	)
	op := func() error {
		attempt++
		actx, cancel := ctx, context.CancelFunc(func() {})
		if r.AttemptTimeout > 0 {
			actx, cancel = context.WithTimeout(ctx, r.AttemptTimeout)
		}
		defer cancel()

		text, err := r.Next.Generate(actx, instruction, document)
		if err != nil {
			if r.Log != nil {
				r.Log.WithError(err).WithField("attempt", attempt).Warn("llm request failed")
			}
			return err
		}
		out = text
		return nil
	}

	eb := backoff.NewExponentialBackOff()
	eb.MaxElapsedTime = r.MaxElapsed
	if r.InitialInterval > 0 {
		eb.InitialInterval = r.InitialInterval
	}
	retries := r.MaxRetries
	if retries < 0 {
		retries = 0
	}
	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(retries)), ctx)

	if err := backoff.Retry(op, b); err != nil {
		return "", err
	}
	return out, nil
}
