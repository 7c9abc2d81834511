package interview

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/johnquangdev/interview-assistant/internal/adapter/repository/memory"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

type sequenceTokens struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceTokens) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("token-%d", g.n), nil
}

type stubAnalyzer struct {
	signals map[string]entities.ResponseSignals
	err     error
}

func (a *stubAnalyzer) Analyze(_ context.Context, _ entities.CompiledQuestion, answer string) (*entities.ResponseSignals, error) {
	if a.err != nil {
		return nil, a.err
	}
	if s, ok := a.signals[answer]; ok {
		return &s, nil
	}
	return &entities.ResponseSignals{Sentiment: 0.2, Relevance: 0.9}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entities.InterviewEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event entities.InterviewEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []entities.InterviewEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]entities.InterviewEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store     *memory.Store
	clock     *clock.Mock
	analyzer  *stubAnalyzer
	publisher *recordingPublisher
	service   *InterviewService
	owner     uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:     memory.NewStore(),
		clock:     clock.NewMock(),
		analyzer:  &stubAnalyzer{signals: map[string]entities.ResponseSignals{}},
		publisher: &recordingPublisher{},
		owner:     uuid.New(),
	}
	f.clock.Set(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	f.service = NewInterviewService(
		f.store.Bots(),
		f.store.Sessions(),
		f.store.Participants(),
		&sequenceTokens{},
		f.analyzer,
		f.publisher,
		f.clock,
		DefaultPolicy(),
		nil,
	)
	return f
}

func (f *fixture) createBot(t *testing.T, behavior entities.AdaptiveBehavior, groups ...entities.QuestionGroup) *entities.Bot {
	t.Helper()

	now := f.clock.Now()
	bot := &entities.Bot{
		ID:                uuid.New(),
		Name:              "Diet research",
		Personality:       datatypes.NewJSONType(entities.Personality{Tone: entities.ToneProfessional}),
		InterviewStyle:    datatypes.NewJSONType(entities.InterviewStyle{QuestionDepth: entities.DepthModerate}),
		ResearchQuestions: groups,
		AdaptiveBehavior:  datatypes.NewJSONType(behavior),
		IsActive:          true,
		CreatedBy:         f.owner,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	require.NoError(t, f.store.Bots().Create(context.Background(), bot))
	return bot
}

func (f *fixture) createSession(t *testing.T, bot *entities.Bot, maxParticipants int, mutate ...func(*CreateSessionInput)) *entities.InterviewSession {
	t.Helper()

	input := CreateSessionInput{
		OwnerID:         f.owner,
		BotID:           bot.ID,
		Title:           "Spring study",
		MaxParticipants: &maxParticipants,
	}
	for _, m := range mutate {
		m(&input)
	}
	session, err := f.service.CreateSession(context.Background(), input)
	require.NoError(t, err)
	return session
}

func (f *fixture) join(t *testing.T, session *entities.InterviewSession) *JoinResult {
	t.Helper()

	result, err := f.service.Join(context.Background(), JoinInput{Token: session.AccessToken})
	require.NoError(t, err)
	return result
}

func (f *fixture) submit(participantID uuid.UUID, index int, text string) (*SubmitResult, error) {
	return f.service.SubmitResponse(context.Background(), SubmitResponseInput{
		ParticipantSessionID: participantID,
		QuestionIndex:        index,
		Text:                 text,
	})
}

func group(category string, priority entities.Priority, questions ...string) entities.QuestionGroup {
	return entities.QuestionGroup{Category: category, Priority: priority, Questions: questions}
}

func intPtr(v int) *int { return &v }
