package ai

import (
	"context"
	"github.com/Odunjoy/NaijaStoic-props/config"
	"github.com/Odunjoy/NaijaStoic-props/discord"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"github.com/sethvargo/go-retry"
	"time"
)

// Request is everything a backend needs for one completion.
type Request struct {
	SystemInstruction string
	Input             string
	// JSON asks the backend for a JSON-only response where supported.
	JSON bool
}

// Generator is the generation backend capability. Failures are *errs.Error
// of kind Transient, Auth, Quota or Configuration.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// New builds the backend selected by c, bounded by c.GenerationTimeout.
// A missing credential fails here, before any pipeline call.
func New(ctx context.Context, c *config.Config) (Generator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var g Generator
	switch c.AiProvider {
	case config.ProviderOpenAI:
		g = NewOpenAI(c.APIKey(), c.ModelName())
	case config.ProviderGemini:
		var err error
		g, err = NewGemini(ctx, c.APIKey(), c.ModelName())
		if err != nil {
			return nil, err
		}
	}
	discord.Infof("Initialized %s generator with model %s", c.AiProvider, c.ModelName())
	return WithTimeout(g, c.GenerationTimeout), nil
}

type timeoutGenerator struct {
	g Generator
	d time.Duration
}

// WithTimeout bounds every call to g by d. An expired deadline is reported as
// Transient even if g ignores its context.
func WithTimeout(g Generator, d time.Duration) Generator {
	return &timeoutGenerator{g: g, d: d}
}

type result struct {
	text string
	err  error
}

func (t *timeoutGenerator) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	ch := make(chan result, 1)
	go func() {
		text, err := t.g.Generate(ctx, req)
		ch <- result{text: text, err: err}
	}()
	select {
	case r := <-ch:
		if r.err != nil && ctx.Err() != nil {
			return "", errs.New(errs.Transient, "generation timed out after "+t.d.String(), r.err)
		}
		return r.text, r.err
	case <-ctx.Done():
		return "", errs.New(errs.Transient, "generation timed out after "+t.d.String(), ctx.Err())
	}
}

// GenerateWithRetry calls g and hands the text to parse. Transient failures
// and MalformedResponse verdicts are retried up to attempts total with
// exponential backoff; every other failure returns at once.
func GenerateWithRetry[T any](ctx context.Context, g Generator, req Request, parse func(raw string) (T, error), attempts int, backoff time.Duration) (T, error) {
	var out T
	if attempts < 1 {
		attempts = 1
	}
	if backoff <= 0 {
		backoff = time.Millisecond
	}
	b := retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(backoff))
	attempt := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		discord.Infof("Generation attempt: %d/%d", attempt, attempts)
		raw, err := g.Generate(ctx, req)
		if err == nil {
			out, err = parse(raw)
		}
		if err == nil {
			return nil
		}
		discord.Errorf("Error on attempt %d: %v", attempt, err)
		if errs.Retryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
