package interview

import (
	"strings"
	"time"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// Snapshot is the read-only input to the adaptive rules for one submitted answer
type Snapshot struct {
	Script    []entities.CompiledQuestion
	Index     int
	Signals   *entities.ResponseSignals
	Behavior  entities.AdaptiveBehavior
	Clarified bool
	Elapsed   time.Duration
	Estimated time.Duration
	Thresholds
}

// Thresholds tune when the adaptive rules fire
type Thresholds struct {
	LowRelevance       float64 // relevance strictly below this triggers a topic pivot
	NegativeSentiment  float64 // sentiment at or below -this triggers a clarification
	CompletionFraction float64 // share of the estimated duration after which low-priority tails are dropped
}

// Decision is the outcome of running the rules
type Decision struct {
	Next            int
	Clarify         bool
	Skipped         int
	EarlyCompletion bool
}

// Rule refines a decision. Rules must not mutate the snapshot.
type Rule func(s Snapshot, d Decision) Decision

// DefaultRules is the fixed evaluation order
var DefaultRules = []Rule{PivotTopic, RequestClarification, OptimizeCompletion}

// Decide runs rules in order starting from the plain advance to Index+1
func Decide(s Snapshot, rules []Rule) Decision {
	d := Decision{Next: s.Index + 1}
	for _, rule := range rules {
		d = rule(s, d)
	}
	if d.Next > len(s.Script) {
		d.Next = len(s.Script)
	}
	return d
}

// PivotTopic skips the rest of the current category when the answer drifted off topic
func PivotTopic(s Snapshot, d Decision) Decision {
	if !s.Behavior.TopicPivoting || s.Signals == nil {
		return d
	}
	if s.Signals.Relevance >= s.LowRelevance {
		return d
	}

	category := s.Script[s.Index].Category
	next := d.Next
	for next < len(s.Script) && strings.EqualFold(s.Script[next].Category, category) {
		next++
	}
	d.Skipped += next - d.Next
	d.Next = next
	return d
}

// RequestClarification re-asks a sensitive question once after a strongly negative answer
func RequestClarification(s Snapshot, d Decision) Decision {
	if !s.Behavior.SentimentAdjustment || s.Signals == nil || s.Clarified {
		return d
	}
	if !s.Script[s.Index].IsSensitive() || s.Signals.Sentiment > -s.NegativeSentiment {
		return d
	}

	d.Next = s.Index
	d.Clarify = true
	d.Skipped = 0
	return d
}

// OptimizeCompletion ends the interview when only low-priority questions remain and time is running out
func OptimizeCompletion(s Snapshot, d Decision) Decision {
	if !s.Behavior.CompletionOptimization || s.Estimated <= 0 || d.Next >= len(s.Script) {
		return d
	}
	if float64(s.Elapsed) <= float64(s.Estimated)*s.CompletionFraction {
		return d
	}

	for _, q := range s.Script[d.Next:] {
		if q.Priority != entities.PriorityLow {
			return d
		}
	}

	d.Next = len(s.Script)
	d.Clarify = false
	d.EarlyCompletion = true
	return d
}
