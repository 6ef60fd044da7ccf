package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/resumeready/backend/cache"
	"github.com/resumeready/backend/llm"
	"github.com/resumeready/backend/models"
	"github.com/resumeready/backend/utils"
)

const defaultAttempts = 2

// Cache stores raw completions by key
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ResumeResult is the outcome of a readiness analysis
type ResumeResult struct {
	Score    int
	Feedback string
	Analysis *models.ResumeAnalysis
}

// Analyzer runs the resume prompts against an LLM provider
type Analyzer struct {
	provider llm.Provider
	cache    Cache
	attempts int
	backoff  time.Duration
	logger   *logrus.Entry
}

// NewAnalyzer creates an analyzer. cache may be nil.
func NewAnalyzer(provider llm.Provider, c Cache) *Analyzer {
	return &Analyzer{
		provider: provider,
		cache:    c,
		attempts: defaultAttempts,
		backoff:  500 * time.Millisecond,
		logger:   utils.Component("analysis"),
	}
}

// AnalyzeResume scores a resume. Feedback holds the raw model answer.
func (a *Analyzer) AnalyzeResume(ctx context.Context, resumeText string) (*ResumeResult, error) {
	raw, err := a.complete(ctx, ResumeAnalysisPrompt(resumeText))
	if err != nil {
		return nil, err
	}

	score, parsed := ParseResumeAnalysis(raw)
	if parsed == nil {
		a.logger.Warn("Resume analysis was not valid JSON, used score fallback")
	}

	return &ResumeResult{Score: score, Feedback: raw, Analysis: parsed}, nil
}

// MatchResume compares a resume with a job description
func (a *Analyzer) MatchResume(ctx context.Context, resumeText, jobDescription string) (*models.MatchResult, error) {
	raw, err := a.complete(ctx, MatchPrompt(resumeText, jobDescription))
	if err != nil {
		return nil, err
	}
	return ParseMatchResult(raw), nil
}

func (a *Analyzer) complete(ctx context.Context, prompt string) (string, error) {
	key := cache.Key(a.provider.Name(), a.provider.Model(), prompt)

	if a.cache != nil {
		if cached, err := a.cache.Get(ctx, key); err == nil {
			a.logger.WithField("key", key).Debug("Analysis cache hit")
			return cached, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			a.logger.WithError(err).Warn("Analysis cache read failed")
		}
	}

	start := time.Now()
	raw, err := retry(ctx, a.attempts, a.backoff, func() (string, error) {
		return a.provider.Complete(ctx, prompt)
	})
	if err != nil {
		return "", fmt.Errorf("%s completion failed: %w", a.provider.Name(), err)
	}

	a.logger.WithFields(logrus.Fields{
		"provider": a.provider.Name(),
		"model":    a.provider.Model(),
		"duration": time.Since(start),
		"length":   len(raw),
	}).Info("Completion finished")

	if a.cache != nil {
		_ = a.cache.Set(ctx, key, raw)
	}
	return raw, nil
}

func retry[T any](ctx context.Context, attempts int, backoff time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !llm.Retryable(err) {
			return zero, err
		}
		if ctx.Err() != nil || i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff * time.Duration(i+1)):
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
