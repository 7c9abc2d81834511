package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const answerAnalysisPrompt = `You score interview answers.
Return only a JSON object: {"sentiment": number between -1 and 1, "relevance": number between 0 and 1}.
sentiment is the emotional tone of the answer. relevance is how well the answer addresses the topic "%s".

Question: %s
Answer: %s`

// AnswerScore is the parsed analysis of a single answer
type AnswerScore struct {
	Sentiment float64 `json:"sentiment"`
	Relevance float64 `json:"relevance"`
}

// AnalyzeAnswer asks the model for the sentiment of answer and its relevance to category
func (g *GroqClient) AnalyzeAnswer(ctx context.Context, category, question, answer string) (*AnswerScore, error) {
	content, err := g.Complete(ctx, ChatRequest{
		Messages: []ChatMessage{
			{Role: "user", Content: fmt.Sprintf(answerAnalysisPrompt, category, question, answer)},
		},
		Temperature:    0.1,
		MaxTokens:      100,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return nil, err
	}
	return ParseAnswerScore(content)
}

// ParseAnswerScore decodes a model reply, tolerating markdown code fences
func ParseAnswerScore(content string) (*AnswerScore, error) {
	content = extractJSON(content)

	var raw struct {
		Sentiment *float64 `json:"sentiment"`
		Relevance *float64 `json:"relevance"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	// Validate required fields
	if raw.Sentiment == nil || raw.Relevance == nil {
		return nil, fmt.Errorf("missing sentiment or relevance in response")
	}

	return &AnswerScore{Sentiment: *raw.Sentiment, Relevance: *raw.Relevance}, nil
}

func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
