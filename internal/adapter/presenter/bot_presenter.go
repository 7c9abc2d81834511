package presenter

import (
	"github.com/johnquangdev/interview-assistant/internal/adapter/dto/bot"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	botUsecase "github.com/johnquangdev/interview-assistant/internal/usecase/bot"
)

// ToBotResponse converts a Bot entity to BotResponse DTO
func ToBotResponse(b *entities.Bot) *bot.BotResponse {
	if b == nil {
		return nil
	}

	personality := b.Personality.Data()
	style := b.Style()
	behavior := b.Behavior()

	groups := make([]bot.QuestionGroupRequest, len(b.ResearchQuestions))
	for i, g := range b.ResearchQuestions {
		groups[i] = bot.QuestionGroupRequest{
			Category:           g.Category,
			Questions:          append([]string{}, g.Questions...),
			Priority:           string(g.Priority),
			AdaptiveConditions: append([]string{}, g.AdaptiveConditions...),
		}
	}

	return &bot.BotResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		Description: b.Description,
		Personality: bot.PersonalityRequest{
			Tone:              string(personality.Tone),
			Adaptability:      string(personality.Adaptability),
			ProbingStyle:      string(personality.ProbingStyle),
			FollowUpFrequency: string(personality.FollowUpFrequency),
		},
		InterviewStyle: bot.InterviewStyleRequest{
			QuestionDepth:          string(style.QuestionDepth),
			ConversationFlow:       string(style.ConversationFlow),
			TimeManagement:         string(style.TimeManagement),
			ClarificationThreshold: style.ClarificationThreshold,
		},
		ResearchQuestions: groups,
		AdaptiveBehavior: bot.AdaptiveBehaviorRequest{
			ResponseAnalysis:       behavior.ResponseAnalysis,
			SentimentAdjustment:    behavior.SentimentAdjustment,
			TopicPivoting:          behavior.TopicPivoting,
			CompletionOptimization: behavior.CompletionOptimization,
		},
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToBotListResponse converts bot summaries to BotListResponse
func ToBotListResponse(summaries []*botUsecase.BotSummary, page, pageSize int) *bot.BotListResponse {
	bots := make([]*bot.BotResponse, len(summaries))
	for i, s := range summaries {
		bots[i] = ToBotResponse(s.Bot)
		count := s.SessionCount
		bots[i].SessionCount = &count
	}

	return &bot.BotListResponse{
		Bots:     bots,
		Page:     page,
		PageSize: pageSize,
	}
}

// ToCreateBotInput converts a CreateBotRequest into usecase input
func ToCreateBotInput(req *bot.CreateBotRequest) botUsecase.CreateBotInput {
	groups := make([]entities.QuestionGroup, len(req.ResearchQuestions))
	for i, g := range req.ResearchQuestions {
		groups[i] = entities.QuestionGroup{
			Category:           g.Category,
			Questions:          g.Questions,
			Priority:           entities.Priority(g.Priority),
			AdaptiveConditions: g.AdaptiveConditions,
		}
	}

	return botUsecase.CreateBotInput{
		Name:        req.Name,
		Description: req.Description,
		Personality: entities.Personality{
			Tone:              entities.Tone(req.Personality.Tone),
			Adaptability:      entities.Level(req.Personality.Adaptability),
			ProbingStyle:      entities.ProbingStyle(req.Personality.ProbingStyle),
			FollowUpFrequency: entities.Level(req.Personality.FollowUpFrequency),
		},
		InterviewStyle: entities.InterviewStyle{
			QuestionDepth:          entities.QuestionDepth(req.InterviewStyle.QuestionDepth),
			ConversationFlow:       entities.ConversationFlow(req.InterviewStyle.ConversationFlow),
			TimeManagement:         entities.TimeManagement(req.InterviewStyle.TimeManagement),
			ClarificationThreshold: req.InterviewStyle.ClarificationThreshold,
		},
		ResearchQuestions: groups,
		AdaptiveBehavior: entities.AdaptiveBehavior{
			ResponseAnalysis:       req.AdaptiveBehavior.ResponseAnalysis,
			SentimentAdjustment:    req.AdaptiveBehavior.SentimentAdjustment,
			TopicPivoting:          req.AdaptiveBehavior.TopicPivoting,
			CompletionOptimization: req.AdaptiveBehavior.CompletionOptimization,
		},
	}
}
