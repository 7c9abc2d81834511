package bot

// PersonalityRequest describes how the bot sounds
type PersonalityRequest struct {
	Tone              string `json:"tone,omitempty" validate:"omitempty,oneof=professional casual empathetic analytical"`
	Adaptability      string `json:"adaptability,omitempty" validate:"omitempty,oneof=high medium low"`
	ProbingStyle      string `json:"probing_style,omitempty" validate:"omitempty,oneof=gentle direct exploratory"`
	FollowUpFrequency string `json:"follow_up_frequency,omitempty" validate:"omitempty,oneof=high medium low"`
}

// InterviewStyleRequest describes how the bot paces an interview
type InterviewStyleRequest struct {
	QuestionDepth          string  `json:"question_depth,omitempty" validate:"omitempty,oneof=surface moderate deep"`
	ConversationFlow       string  `json:"conversation_flow,omitempty" validate:"omitempty,oneof=structured adaptive free_form"`
	TimeManagement         string  `json:"time_management,omitempty" validate:"omitempty,oneof=strict flexible"`
	ClarificationThreshold float64 `json:"clarification_threshold,omitempty" validate:"gte=0,lte=1"`
}

// QuestionGroupRequest is one authored block of questions
type QuestionGroupRequest struct {
	Category           string   `json:"category" validate:"required,notblank,max=100"`
	Questions          []string `json:"questions" validate:"required,min=1,dive,required,notblank"`
	Priority           string   `json:"priority" validate:"required,oneof=high medium low"`
	AdaptiveConditions []string `json:"adaptive_conditions,omitempty"`
}

// AdaptiveBehaviorRequest toggles the adaptive rules
type AdaptiveBehaviorRequest struct {
	ResponseAnalysis       bool `json:"response_analysis"`
	SentimentAdjustment    bool `json:"sentiment_adjustment"`
	TopicPivoting          bool `json:"topic_pivoting"`
	CompletionOptimization bool `json:"completion_optimization"`
}

// CreateBotRequest represents the request to create an interview bot
type CreateBotRequest struct {
	Name              string                  `json:"name" validate:"required,notblank,max=255"`
	Description       *string                 `json:"description,omitempty"`
	Personality       PersonalityRequest      `json:"personality"`
	InterviewStyle    InterviewStyleRequest   `json:"interview_style"`
	ResearchQuestions []QuestionGroupRequest  `json:"research_questions" validate:"required,min=1,dive"`
	AdaptiveBehavior  AdaptiveBehaviorRequest `json:"adaptive_behavior"`
}
