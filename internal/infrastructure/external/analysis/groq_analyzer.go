package analysis

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	"github.com/johnquangdev/interview-assistant/pkg/ai"
	"github.com/johnquangdev/interview-assistant/pkg/jobcontext"
)

// ErrNotConfigured is returned when no API key is available
var ErrNotConfigured = errors.New("answer analysis is not configured")

// Scorer scores a single answer
type Scorer interface {
	AnalyzeAnswer(ctx context.Context, category, question, answer string) (*ai.AnswerScore, error)
}

// GroqAnalyzer scores answers through Groq, retrying transient failures
type GroqAnalyzer struct {
	scorer     Scorer
	configured bool
	timeout    time.Duration
	retry      jobcontext.Options
	logger     *zap.Logger
}

// NewGroqAnalyzer creates an analyzer bounded by timeout per answer
func NewGroqAnalyzer(client *ai.GroqClient, timeout, maxRetryElapsed time.Duration, logger *zap.Logger) *GroqAnalyzer {
	a := newAnalyzer(client, timeout, logger)
	a.configured = client.Configured()
	if maxRetryElapsed > 0 {
		a.retry.MaxInterval = maxRetryElapsed
	}
	return a
}

func newAnalyzer(scorer Scorer, timeout time.Duration, logger *zap.Logger) *GroqAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroqAnalyzer{
		scorer:     scorer,
		configured: true,
		timeout:    timeout,
		retry: jobcontext.Options{
			MaxRetries:      2,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     2 * time.Second,
		},
		logger: logger,
	}
}

// Analyze returns the sentiment and relevance of answer
func (a *GroqAnalyzer) Analyze(ctx context.Context, question entities.CompiledQuestion, answer string) (*entities.ResponseSignals, error) {
	if !a.configured {
		return nil, ErrNotConfigured
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	var score *ai.AnswerScore
	err := jobcontext.Run(ctx, a.retry, func(ctx context.Context) error {
		s, err := a.scorer.AnalyzeAnswer(ctx, question.Category, question.Text, answer)
		if err != nil {
			if attempt := jobcontext.GetRetryAttempt(ctx); attempt > 0 {
				a.logger.Debug("answer analysis retry failed", zap.Int("attempt", attempt), zap.Error(err))
			}
			return err
		}
		score = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &entities.ResponseSignals{
		Sentiment: score.Sentiment,
		Relevance: score.Relevance,
	}, nil
}
