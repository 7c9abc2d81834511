package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/interview-assistant/internal/usecase/errors"
)

// SubmitResponse records an answer to the current question and selects the next one
func (s *InterviewService) SubmitResponse(ctx context.Context, input SubmitResponseInput) (*SubmitResult, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, usecaseErrors.ErrEmptyResponse
	}

	participant, err := s.findParticipant(ctx, input.ParticipantSessionID)
	if err != nil {
		return nil, err
	}

	// Check ordering before touching anything else
	if participant.Completed {
		return nil, usecaseErrors.ErrParticipantCompleted
	}
	if input.QuestionIndex != participant.CurrentQuestionIndex {
		return nil, usecaseErrors.ErrSequenceMismatch
	}

	session, err := s.findSession(ctx, participant.SessionID)
	if err != nil {
		return nil, err
	}
	question, ok := session.QuestionAt(input.QuestionIndex)
	if !ok {
		return nil, usecaseErrors.ErrSequenceMismatch
	}

	bot, err := s.findBot(ctx, session.BotID)
	if err != nil {
		return nil, err
	}
	behavior := bot.Behavior()

	now := s.clock.Now()
	clarified := participant.WasClarified(input.QuestionIndex)
	response := entities.Response{
		QuestionIndex: input.QuestionIndex,
		Text:          text,
		SubmittedAt:   now,
		Clarification: clarified,
	}

	// Analysis failures never block the interview
	analysisUnavailable := false
	if behavior.ResponseAnalysis {
		signals, err := s.analyze(ctx, question, text)
		if err != nil {
			analysisUnavailable = true
			s.logger.Warn("answer analysis unavailable, continuing without signals",
				zap.String("participant_session_id", participant.ID.String()),
				zap.Int("question_index", input.QuestionIndex),
				zap.Error(err),
			)
		} else {
			response.Signals = signals
		}
	}

	decision := Decide(Snapshot{
		Script:     session.Questions,
		Index:      input.QuestionIndex,
		Signals:    response.Signals,
		Behavior:   behavior,
		Clarified:  clarified,
		Elapsed:    now.Sub(participant.JoinedAt),
		Estimated:  estimatedDuration(session),
		Thresholds: s.thresholdsFor(bot),
	}, s.rules)

	participant.Responses = append(participant.Responses, response)
	participant.LastActiveAt = now
	if decision.Clarify {
		participant.ClarifiedIndices = append(participant.ClarifiedIndices, input.QuestionIndex)
	}

	completed := decision.Next >= session.TotalQuestions()
	if completed {
		participant.Complete(now)
		participant.CurrentQuestionIndex = session.TotalQuestions()
		session, err = s.participantRepo.CompleteParticipant(ctx, participant, now)
	} else {
		participant.CurrentQuestionIndex = decision.Next
		err = s.participantRepo.SaveProgress(ctx, participant)
	}
	if err != nil {
		if errors.Is(err, entities.ErrVersionConflict) {
			// A concurrent submission for the same question won
			return nil, usecaseErrors.ErrSequenceMismatch
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to save response: %w", err)
	}

	s.publishResponse(ctx, session, participant, response, decision)
	if completed {
		s.logger.Info("participant completed interview",
			zap.String("session_id", session.ID.String()),
			zap.String("participant_session_id", participant.ID.String()),
			zap.Bool("early_completion", decision.EarlyCompletion),
			zap.String("session_status", string(session.Status)),
		)
		s.publishCompletion(ctx, session, participant, now)
	}

	result := &SubmitResult{
		Accepted:               true,
		Completed:              completed,
		ClarificationRequested: decision.Clarify && !completed,
		Skipped:                decision.Skipped,
		Progress:               participant.Progress(session.TotalQuestions()),
		AnalysisUnavailable:    analysisUnavailable,
	}
	if !completed {
		next := participant.CurrentQuestionIndex
		result.NextQuestionIndex = &next
		if q, ok := session.QuestionAt(next); ok {
			result.NextQuestion = &q
		}
	}

	return result, nil
}

func (s *InterviewService) analyze(ctx context.Context, question entities.CompiledQuestion, text string) (*entities.ResponseSignals, error) {
	if s.analyzer == nil {
		return nil, usecaseErrors.ErrAnalysisUnavailable
	}

	signals, err := s.analyzer.Analyze(ctx, question, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrAnalysisUnavailable, err)
	}
	if signals == nil {
		return nil, usecaseErrors.ErrAnalysisUnavailable
	}

	return &entities.ResponseSignals{
		Sentiment: clamp(signals.Sentiment, -1, 1),
		Relevance: clamp(signals.Relevance, 0, 1),
	}, nil
}

// thresholdsFor applies a bot's clarification threshold over the policy default
func (s *InterviewService) thresholdsFor(bot *entities.Bot) Thresholds {
	t := s.policy.Thresholds
	if threshold := bot.Style().ClarificationThreshold; threshold > 0 {
		t.NegativeSentiment = threshold
	}
	return t
}

func (s *InterviewService) publishResponse(
	ctx context.Context,
	session *entities.InterviewSession,
	participant *entities.ParticipantSession,
	response entities.Response,
	decision Decision,
) {
	participantID := participant.ID
	payload := map[string]interface{}{
		"question_index": response.QuestionIndex,
		"response":       response.Text,
		"progress":       participant.Progress(session.TotalQuestions()),
		"clarification":  decision.Clarify,
		"skipped":        decision.Skipped,
	}
	if response.Signals != nil {
		payload["sentiment"] = response.Signals.Sentiment
		payload["relevance"] = response.Signals.Relevance
	}

	s.publish(ctx, entities.InterviewEvent{
		SessionID:     session.ID,
		BotID:         session.BotID,
		ParticipantID: &participantID,
		Type:          entities.InterviewEventResponse,
		Payload:       payload,
		Timestamp:     response.SubmittedAt,
	})
}

func estimatedDuration(session *entities.InterviewSession) time.Duration {
	if session.EstimatedDuration == nil {
		return 0
	}
	return time.Duration(*session.EstimatedDuration) * time.Minute
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
