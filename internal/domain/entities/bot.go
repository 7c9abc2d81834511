package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Tone represents the conversational tone of a bot
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneEmpathetic   Tone = "empathetic"
	ToneAnalytical   Tone = "analytical"
)

// Level is a three-step scale used by several bot settings
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// ProbingStyle represents how a bot digs into answers
type ProbingStyle string

const (
	ProbingGentle      ProbingStyle = "gentle"
	ProbingDirect      ProbingStyle = "direct"
	ProbingExploratory ProbingStyle = "exploratory"
)

// QuestionDepth represents how deep questions go
type QuestionDepth string

const (
	DepthSurface  QuestionDepth = "surface"
	DepthModerate QuestionDepth = "moderate"
	DepthDeep     QuestionDepth = "deep"
)

// ConversationFlow represents how strictly the script is followed
type ConversationFlow string

const (
	FlowStructured ConversationFlow = "structured"
	FlowAdaptive   ConversationFlow = "adaptive"
	FlowFreeForm   ConversationFlow = "free_form"
)

// TimeManagement represents how the bot treats the estimated duration
type TimeManagement string

const (
	TimeStrict   TimeManagement = "strict"
	TimeFlexible TimeManagement = "flexible"
)

// Priority orders question groups in a compiled script
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ConditionSensitive marks questions that may warrant a clarification turn
const ConditionSensitive = "sensitive"

// Rank returns the sort position of the priority, lowest first
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Personality describes how the bot sounds
type Personality struct {
	Tone              Tone         `json:"tone"`
	Adaptability      Level        `json:"adaptability"`
	ProbingStyle      ProbingStyle `json:"probing_style"`
	FollowUpFrequency Level        `json:"follow_up_frequency"`
}

// InterviewStyle describes how the bot paces an interview
type InterviewStyle struct {
	QuestionDepth          QuestionDepth    `json:"question_depth"`
	ConversationFlow       ConversationFlow `json:"conversation_flow"`
	TimeManagement         TimeManagement   `json:"time_management"`
	ClarificationThreshold float64          `json:"clarification_threshold"`
}

// QuestionGroup is an authored block of questions sharing a category
type QuestionGroup struct {
	Category           string   `json:"category"`
	Questions          []string `json:"questions"`
	Priority           Priority `json:"priority"`
	AdaptiveConditions []string `json:"adaptive_conditions,omitempty"`
}

// AdaptiveBehavior toggles the adaptive rules applied to responses
type AdaptiveBehavior struct {
	ResponseAnalysis       bool `json:"response_analysis"`
	SentimentAdjustment    bool `json:"sentiment_adjustment"`
	TopicPivoting          bool `json:"topic_pivoting"`
	CompletionOptimization bool `json:"completion_optimization"`
}

// Bot represents a researcher-authored interview definition.
// Bots are immutable once created.
type Bot struct {
	ID                uuid.UUID                            `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name              string                               `gorm:"type:varchar(255);not null" json:"name"`
	Description       *string                              `gorm:"type:text" json:"description,omitempty"`
	Personality       datatypes.JSONType[Personality]      `gorm:"type:jsonb;not null" json:"personality"`
	InterviewStyle    datatypes.JSONType[InterviewStyle]   `gorm:"type:jsonb;not null" json:"interview_style"`
	ResearchQuestions datatypes.JSONSlice[QuestionGroup]   `gorm:"type:jsonb;not null" json:"research_questions"`
	AdaptiveBehavior  datatypes.JSONType[AdaptiveBehavior] `gorm:"type:jsonb;not null" json:"adaptive_behavior"`
	IsActive          bool                                 `gorm:"default:true;index" json:"is_active"`
	CreatedBy         uuid.UUID                            `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt         time.Time                            `gorm:"default:now()" json:"created_at"`
	UpdatedAt         time.Time                            `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Bot
func (Bot) TableName() string {
	return "interview_bots"
}

// Behavior returns the adaptive behavior flags
func (b *Bot) Behavior() AdaptiveBehavior {
	return b.AdaptiveBehavior.Data()
}

// Style returns the interview style settings
func (b *Bot) Style() InterviewStyle {
	return b.InterviewStyle.Data()
}

// IsOwnedBy reports whether the bot was created by the given user
func (b *Bot) IsOwnedBy(userID uuid.UUID) bool {
	return b.CreatedBy == userID
}

// HasCondition reports whether tags contain cond, ignoring case
func HasCondition(tags []string, cond string) bool {
	for _, t := range tags {
		if strings.EqualFold(strings.TrimSpace(t), cond) {
			return true
		}
	}
	return false
}

// Valid reports whether the tone is a known value
func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneEmpathetic, ToneAnalytical:
		return true
	}
	return false
}

// Valid reports whether the level is a known value
func (l Level) Valid() bool {
	switch l {
	case LevelHigh, LevelMedium, LevelLow:
		return true
	}
	return false
}

// Valid reports whether the probing style is a known value
func (p ProbingStyle) Valid() bool {
	switch p {
	case ProbingGentle, ProbingDirect, ProbingExploratory:
		return true
	}
	return false
}

// Valid reports whether the depth is a known value
func (d QuestionDepth) Valid() bool {
	switch d {
	case DepthSurface, DepthModerate, DepthDeep:
		return true
	}
	return false
}

// Valid reports whether the flow is a known value
func (f ConversationFlow) Valid() bool {
	switch f {
	case FlowStructured, FlowAdaptive, FlowFreeForm:
		return true
	}
	return false
}

// Valid reports whether the time management mode is a known value
func (t TimeManagement) Valid() bool {
	return t == TimeStrict || t == TimeFlexible
}

// Valid reports whether the priority is a known value
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}
