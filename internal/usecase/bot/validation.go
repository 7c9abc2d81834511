package bot

import (
	"strings"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/interview-assistant/internal/usecase/errors"
)

func withPersonalityDefaults(p entities.Personality) entities.Personality {
	if p.Tone == "" {
		p.Tone = entities.ToneProfessional
	}
	if p.Adaptability == "" {
		p.Adaptability = entities.LevelMedium
	}
	if p.ProbingStyle == "" {
		p.ProbingStyle = entities.ProbingGentle
	}
	if p.FollowUpFrequency == "" {
		p.FollowUpFrequency = entities.LevelMedium
	}
	return p
}

func withStyleDefaults(st entities.InterviewStyle) entities.InterviewStyle {
	if st.QuestionDepth == "" {
		st.QuestionDepth = entities.DepthModerate
	}
	if st.ConversationFlow == "" {
		st.ConversationFlow = entities.FlowAdaptive
	}
	if st.TimeManagement == "" {
		st.TimeManagement = entities.TimeFlexible
	}
	return st
}

// validate reports the first invalid field as an InvalidConfig error
func validate(input CreateBotInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return usecaseErrors.InvalidConfig("name is required")
	}

	p := input.Personality
	switch {
	case !p.Tone.Valid():
		return usecaseErrors.InvalidConfig("unknown tone %q", p.Tone)
	case !p.Adaptability.Valid():
		return usecaseErrors.InvalidConfig("unknown adaptability %q", p.Adaptability)
	case !p.ProbingStyle.Valid():
		return usecaseErrors.InvalidConfig("unknown probing_style %q", p.ProbingStyle)
	case !p.FollowUpFrequency.Valid():
		return usecaseErrors.InvalidConfig("unknown follow_up_frequency %q", p.FollowUpFrequency)
	}

	st := input.InterviewStyle
	switch {
	case !st.QuestionDepth.Valid():
		return usecaseErrors.InvalidConfig("unknown question_depth %q", st.QuestionDepth)
	case !st.ConversationFlow.Valid():
		return usecaseErrors.InvalidConfig("unknown conversation_flow %q", st.ConversationFlow)
	case !st.TimeManagement.Valid():
		return usecaseErrors.InvalidConfig("unknown time_management %q", st.TimeManagement)
	case st.ClarificationThreshold < 0 || st.ClarificationThreshold > 1:
		return usecaseErrors.InvalidConfig("clarification_threshold must be within [0,1]")
	}

	if len(input.ResearchQuestions) == 0 {
		return usecaseErrors.InvalidConfig("research_questions must contain at least one group")
	}
	for i, g := range input.ResearchQuestions {
		if strings.TrimSpace(g.Category) == "" {
			return usecaseErrors.InvalidConfig("research_questions[%d]: category is required", i)
		}
		if !g.Priority.Valid() {
			return usecaseErrors.InvalidConfig("research_questions[%d]: unknown priority %q", i, g.Priority)
		}
		if len(g.Questions) == 0 {
			return usecaseErrors.InvalidConfig("research_questions[%d]: at least one question is required", i)
		}
		for j, q := range g.Questions {
			if strings.TrimSpace(q) == "" {
				return usecaseErrors.InvalidConfig("research_questions[%d].questions[%d] is empty", i, j)
			}
		}
	}

	return nil
}
