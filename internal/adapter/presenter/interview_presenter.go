package presenter

import (
	"github.com/johnquangdev/interview-assistant/internal/adapter/dto/common"
	"github.com/johnquangdev/interview-assistant/internal/adapter/dto/interview"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	interviewUsecase "github.com/johnquangdev/interview-assistant/internal/usecase/interview"
)

// ToQuestionResponse converts a compiled question for display
func ToQuestionResponse(q *entities.CompiledQuestion) *interview.QuestionResponse {
	if q == nil {
		return nil
	}
	return &interview.QuestionResponse{
		Index:    q.Index,
		Category: q.Category,
		Text:     q.Text,
		Priority: string(q.Priority),
	}
}

// ToSessionResponse converts a session to the owner view, including the access token
func ToSessionResponse(s *entities.InterviewSession) *interview.SessionResponse {
	if s == nil {
		return nil
	}

	response := &interview.SessionResponse{
		ID:                    s.ID.String(),
		BotID:                 s.BotID.String(),
		Title:                 s.Title,
		Description:           s.Description,
		ResearchFocus:         append([]string{}, s.ResearchFocus...),
		AccessToken:           s.AccessToken,
		Status:                string(s.Status),
		ExpiresAt:             s.ExpiresAt,
		EstimatedDuration:     s.EstimatedDuration,
		MaxParticipants:       s.MaxParticipants,
		CurrentParticipants:   s.CurrentParticipants,
		CompletedParticipants: s.CompletedParticipants,
		TotalQuestions:        s.TotalQuestions(),
		ParticipantEmail:      s.ParticipantEmail,
		ParticipantName:       s.ParticipantName,
		CompletedAt:           s.CompletedAt,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}

	if s.PersonaID != nil {
		personaID := s.PersonaID.String()
		response.PersonaID = &personaID
	}

	response.Questions = make([]*interview.QuestionResponse, len(s.Questions))
	for i := range s.Questions {
		response.Questions[i] = ToQuestionResponse(&s.Questions[i])
	}

	return response
}

// ToSessionListResponse converts a page of sessions to the owner list view
func ToSessionListResponse(sessions []*entities.InterviewSession, total int64, page, pageSize int) *interview.SessionListResponse {
	items := make([]*interview.SessionResponse, len(sessions))
	for i, s := range sessions {
		items[i] = ToSessionResponse(s)
		// Lists stay light; the script is on the detail view
		items[i].Questions = nil
	}

	return &interview.SessionListResponse{
		Sessions:   items,
		Pagination: common.NewPagination(total, page, pageSize),
	}
}

// ToParticipantResponse converts a participant session to the owner view
func ToParticipantResponse(p *entities.ParticipantSession, totalQuestions int) *interview.ParticipantResponse {
	if p == nil {
		return nil
	}

	response := &interview.ParticipantResponse{
		ID:                   p.ID.String(),
		AnonymousID:          p.AnonymousID,
		ParticipantEmail:     p.ParticipantEmail,
		ParticipantName:      p.ParticipantName,
		JoinedAt:             p.JoinedAt,
		LastActiveAt:         p.LastActiveAt,
		CurrentQuestionIndex: p.CurrentQuestionIndex,
		Answered:             p.AnsweredCount(),
		Progress:             p.Progress(totalQuestions),
		Completed:            p.Completed,
		CompletedAt:          p.CompletedAt,
	}

	// UserID is nil for anonymous participants
	if p.UserID != nil {
		userID := p.UserID.String()
		response.UserID = &userID
	}

	return response
}

// ToSessionDetailResponse converts the owner view of a session with its participants
func ToSessionDetailResponse(detail *interviewUsecase.SessionDetail) *interview.SessionDetailResponse {
	total := detail.Session.TotalQuestions()
	participants := make([]*interview.ParticipantResponse, len(detail.Participants))
	for i, p := range detail.Participants {
		participants[i] = ToParticipantResponse(p, total)
	}

	return &interview.SessionDetailResponse{
		Session:      ToSessionResponse(detail.Session),
		Participants: participants,
	}
}

// ToSessionPreviewResponse converts a session to the participant view.
// The access token and the owner-only fields are never included.
func ToSessionPreviewResponse(s *entities.InterviewSession, b *entities.Bot) *interview.SessionPreviewResponse {
	if s == nil {
		return nil
	}

	response := &interview.SessionPreviewResponse{
		ID:                  s.ID.String(),
		Title:               s.Title,
		Description:         s.Description,
		EstimatedDuration:   s.EstimatedDuration,
		Status:              string(s.Status),
		ExpiresAt:           s.ExpiresAt,
		MaxParticipants:     s.MaxParticipants,
		CurrentParticipants: s.CurrentParticipants,
		TotalQuestions:      s.TotalQuestions(),
	}
	if b != nil {
		response.Bot = &interview.BotPreview{Name: b.Name, Description: b.Description}
	}

	return response
}

// ToJoinSessionResponse converts the outcome of a join
func ToJoinSessionResponse(result *interviewUsecase.JoinResult) *interview.JoinSessionResponse {
	return &interview.JoinSessionResponse{
		ParticipantSessionID: result.Participant.ID.String(),
		AnonymousID:          result.Participant.AnonymousID,
		Session:              ToSessionPreviewResponse(result.Session, result.Bot),
		Question:             ToQuestionResponse(result.Question),
		QuestionIndex:        result.Participant.CurrentQuestionIndex,
		TotalQuestions:       result.TotalQuestions,
		Completed:            result.Completed,
	}
}

// ToSubmitResponseResponse converts the engine's answer to a submission
func ToSubmitResponseResponse(result *interviewUsecase.SubmitResult) *interview.SubmitResponseResponse {
	return &interview.SubmitResponseResponse{
		Accepted:               result.Accepted,
		NextQuestionIndex:      result.NextQuestionIndex,
		NextQuestion:           ToQuestionResponse(result.NextQuestion),
		Completed:              result.Completed,
		ClarificationRequested: result.ClarificationRequested,
		Skipped:                result.Skipped,
		Progress:               result.Progress,
		AnalysisUnavailable:    result.AnalysisUnavailable,
	}
}

// ToProgressResponse converts a participant's progress
func ToProgressResponse(p *interviewUsecase.Progress) *interview.ProgressResponse {
	return &interview.ProgressResponse{
		ParticipantSessionID: p.ParticipantSessionID.String(),
		SessionID:            p.SessionID.String(),
		CurrentQuestionIndex: p.CurrentQuestionIndex,
		TotalQuestions:       p.TotalQuestions,
		Answered:             p.Answered,
		Progress:             p.Progress,
		Completed:            p.Completed,
		Question:             ToQuestionResponse(p.Question),
	}
}
