package interview

import (
	"context"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// TokenGenerator produces opaque, unguessable session access tokens
type TokenGenerator interface {
	Generate() (string, error)
}

// AnswerAnalyzer scores an answer for sentiment and relevance to the question's category
type AnswerAnalyzer interface {
	Analyze(ctx context.Context, question entities.CompiledQuestion, answer string) (*entities.ResponseSignals, error)
}

// EventPublisher delivers interview events; failures never affect the interview
type EventPublisher interface {
	Publish(ctx context.Context, event entities.InterviewEvent) error
}

// Policy holds the engine's tunables
type Policy struct {
	DefaultExpiresInHours int
	TokenAttempts         int
	Thresholds            Thresholds
}

// DefaultPolicy returns the engine defaults
func DefaultPolicy() Policy {
	return Policy{
		DefaultExpiresInHours: 24,
		TokenAttempts:         5,
		Thresholds: Thresholds{
			LowRelevance:       0.3,
			NegativeSentiment:  0.5,
			CompletionFraction: 0.8,
		},
	}
}
