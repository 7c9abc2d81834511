package bot

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/interview-assistant/internal/adapter/repository/memory"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/interview-assistant/internal/usecase/errors"
)

func newTestService() (*BotService, *memory.Store, *clock.Mock) {
	store := memory.NewStore()
	clk := clock.NewMock()
	clk.Set(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	return NewBotService(store.Bots(), store.Sessions(), clk, nil), store, clk
}

func validInput(owner uuid.UUID) CreateBotInput {
	return CreateBotInput{
		OwnerID: owner,
		Name:    "  Diet research ",
		ResearchQuestions: []entities.QuestionGroup{
			{Category: " diet ", Priority: entities.PriorityHigh, Questions: []string{" What do you eat? "}},
		},
		AdaptiveBehavior: entities.AdaptiveBehavior{ResponseAnalysis: true},
	}
}

func TestCreateBot_AppliesDefaults(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	bot, err := svc.CreateBot(context.Background(), validInput(owner))
	require.NoError(t, err)

	assert.Equal(t, "Diet research", bot.Name)
	assert.True(t, bot.IsActive)
	assert.Equal(t, owner, bot.CreatedBy)

	p := bot.Personality.Data()
	assert.Equal(t, entities.ToneProfessional, p.Tone)
	assert.Equal(t, entities.LevelMedium, p.Adaptability)
	assert.Equal(t, entities.ProbingGentle, p.ProbingStyle)
	assert.Equal(t, entities.LevelMedium, p.FollowUpFrequency)

	st := bot.Style()
	assert.Equal(t, entities.DepthModerate, st.QuestionDepth)
	assert.Equal(t, entities.FlowAdaptive, st.ConversationFlow)
	assert.Equal(t, entities.TimeFlexible, st.TimeManagement)

	require.Len(t, bot.ResearchQuestions, 1)
	assert.Equal(t, "diet", bot.ResearchQuestions[0].Category)
	assert.Equal(t, []string{"What do you eat?"}, bot.ResearchQuestions[0].Questions)
	assert.True(t, bot.Behavior().ResponseAnalysis)
}

func TestCreateBot_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	tests := []struct {
		name   string
		mutate func(*CreateBotInput)
	}{
		{"blank name", func(in *CreateBotInput) { in.Name = " " }},
		{"unknown tone", func(in *CreateBotInput) { in.Personality.Tone = "grumpy" }},
		{"unknown adaptability", func(in *CreateBotInput) { in.Personality.Adaptability = "extreme" }},
		{"unknown probing style", func(in *CreateBotInput) { in.Personality.ProbingStyle = "rude" }},
		{"unknown depth", func(in *CreateBotInput) { in.InterviewStyle.QuestionDepth = "abyssal" }},
		{"unknown flow", func(in *CreateBotInput) { in.InterviewStyle.ConversationFlow = "chaotic" }},
		{"unknown time management", func(in *CreateBotInput) { in.InterviewStyle.TimeManagement = "lazy" }},
		{"threshold above one", func(in *CreateBotInput) { in.InterviewStyle.ClarificationThreshold = 1.5 }},
		{"no groups", func(in *CreateBotInput) { in.ResearchQuestions = nil }},
		{"blank category", func(in *CreateBotInput) { in.ResearchQuestions[0].Category = "" }},
		{"unknown priority", func(in *CreateBotInput) { in.ResearchQuestions[0].Priority = "urgent" }},
		{"no questions", func(in *CreateBotInput) { in.ResearchQuestions[0].Questions = nil }},
		{"blank question", func(in *CreateBotInput) { in.ResearchQuestions[0].Questions = []string{"ok", "  "} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(owner)
			tt.mutate(&input)

			_, err := svc.CreateBot(context.Background(), input)
			assert.ErrorIs(t, err, usecaseErrors.ErrInvalidConfig)
		})
	}
}

func TestGetBot_OwnerScoped(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	bot, err := svc.CreateBot(context.Background(), validInput(owner))
	require.NoError(t, err)

	got, err := svc.GetBot(context.Background(), owner, bot.ID)
	require.NoError(t, err)
	assert.Equal(t, bot.ID, got.ID)

	_, err = svc.GetBot(context.Background(), uuid.New(), bot.ID)
	assert.ErrorIs(t, err, usecaseErrors.ErrBotNotFound)

	_, err = svc.GetBot(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, usecaseErrors.ErrBotNotFound)
}

func TestListBots_CountsSessions(t *testing.T) {
	svc, store, clk := newTestService()
	owner := uuid.New()

	older, err := svc.CreateBot(context.Background(), validInput(owner))
	require.NoError(t, err)
	clk.Add(time.Minute)
	newer, err := svc.CreateBot(context.Background(), validInput(owner))
	require.NoError(t, err)
	_, err = svc.CreateBot(context.Background(), validInput(uuid.New()))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, store.Sessions().Create(context.Background(), &entities.InterviewSession{
			ID:          uuid.New(),
			BotID:       older.ID,
			AccessToken: uuid.NewString(),
			Status:      entities.SessionStatusActive,
			CreatedBy:   owner,
		}))
	}

	summaries, err := svc.ListBots(context.Background(), owner, 10, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, newer.ID, summaries[0].Bot.ID)
	assert.Zero(t, summaries[0].SessionCount)
	assert.Equal(t, older.ID, summaries[1].Bot.ID)
	assert.EqualValues(t, 2, summaries[1].SessionCount)

	page, err := svc.ListBots(context.Background(), owner, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, older.ID, page[0].Bot.ID)
}
