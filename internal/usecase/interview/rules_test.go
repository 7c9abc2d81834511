package interview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

func script() []entities.CompiledQuestion {
	sensitive := group("health", entities.PriorityHigh, "S1", "S2")
	sensitive.AdaptiveConditions = []string{entities.ConditionSensitive}
	return Compile([]entities.QuestionGroup{
		sensitive,
		group("diet", entities.PriorityMedium, "D1"),
		group("extras", entities.PriorityLow, "L1", "L2"),
	}, nil)
}

func snapshot(index int, signals *entities.ResponseSignals) Snapshot {
	return Snapshot{
		Script:  script(),
		Index:   index,
		Signals: signals,
		Behavior: entities.AdaptiveBehavior{
			ResponseAnalysis:       true,
			SentimentAdjustment:    true,
			TopicPivoting:          true,
			CompletionOptimization: true,
		},
		Thresholds: DefaultPolicy().Thresholds,
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		snap func() Snapshot
		want Decision
	}{
		{
			name: "plain advance",
			snap: func() Snapshot { return snapshot(0, &entities.ResponseSignals{Sentiment: 0.3, Relevance: 0.8}) },
			want: Decision{Next: 1},
		},
		{
			name: "no signals advances",
			snap: func() Snapshot { return snapshot(2, nil) },
			want: Decision{Next: 3},
		},
		{
			name: "low relevance skips the category",
			snap: func() Snapshot { return snapshot(0, &entities.ResponseSignals{Sentiment: 0, Relevance: 0.1}) },
			want: Decision{Next: 2, Skipped: 1},
		},
		{
			name: "relevance at threshold does not pivot",
			snap: func() Snapshot { return snapshot(0, &entities.ResponseSignals{Relevance: 0.3}) },
			want: Decision{Next: 1},
		},
		{
			name: "negative sentiment on sensitive question clarifies",
			snap: func() Snapshot { return snapshot(1, &entities.ResponseSignals{Sentiment: -0.5, Relevance: 0.9}) },
			want: Decision{Next: 1, Clarify: true},
		},
		{
			name: "clarification overrides pivot",
			snap: func() Snapshot { return snapshot(0, &entities.ResponseSignals{Sentiment: -0.9, Relevance: 0.0}) },
			want: Decision{Next: 0, Clarify: true},
		},
		{
			name: "already clarified advances",
			snap: func() Snapshot {
				s := snapshot(0, &entities.ResponseSignals{Sentiment: -0.9, Relevance: 0.9})
				s.Clarified = true
				return s
			},
			want: Decision{Next: 1},
		},
		{
			name: "negative sentiment on plain question advances",
			snap: func() Snapshot { return snapshot(2, &entities.ResponseSignals{Sentiment: -0.9, Relevance: 0.9}) },
			want: Decision{Next: 3},
		},
		{
			name: "late with only low priority left completes",
			snap: func() Snapshot {
				s := snapshot(2, nil)
				s.Estimated = 10 * time.Minute
				s.Elapsed = 9 * time.Minute
				return s
			},
			want: Decision{Next: 5, EarlyCompletion: true},
		},
		{
			name: "late with higher priority left continues",
			snap: func() Snapshot {
				s := snapshot(0, nil)
				s.Estimated = 10 * time.Minute
				s.Elapsed = 20 * time.Minute
				return s
			},
			want: Decision{Next: 1},
		},
		{
			name: "no estimate never completes early",
			snap: func() Snapshot {
				s := snapshot(2, nil)
				s.Elapsed = time.Hour
				return s
			},
			want: Decision{Next: 3},
		},
		{
			name: "disabled behaviors advance",
			snap: func() Snapshot {
				s := snapshot(0, &entities.ResponseSignals{Sentiment: -1, Relevance: 0})
				s.Behavior = entities.AdaptiveBehavior{}
				return s
			},
			want: Decision{Next: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.snap(), DefaultRules))
		})
	}
}

func TestDecide_LastQuestion(t *testing.T) {
	s := snapshot(4, &entities.ResponseSignals{Relevance: 0})
	d := Decide(s, DefaultRules)
	assert.Equal(t, 5, d.Next)
	assert.False(t, d.Clarify)
}
