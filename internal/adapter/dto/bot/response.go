package bot

import "time"

// BotResponse represents an interview bot
type BotResponse struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	Description       *string                 `json:"description,omitempty"`
	Personality       PersonalityRequest      `json:"personality"`
	InterviewStyle    InterviewStyleRequest   `json:"interview_style"`
	ResearchQuestions []QuestionGroupRequest  `json:"research_questions"`
	AdaptiveBehavior  AdaptiveBehaviorRequest `json:"adaptive_behavior"`
	IsActive          bool                    `json:"is_active"`
	SessionCount      *int64                  `json:"session_count,omitempty"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

// BotListResponse represents a page of bots
type BotListResponse struct {
	Bots     []*BotResponse `json:"bots"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}
