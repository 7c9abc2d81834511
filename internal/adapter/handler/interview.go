package handler

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/errors"
	"github.com/johnquangdev/interview-assistant/internal/adapter/dto/interview"
	"github.com/johnquangdev/interview-assistant/internal/adapter/presenter"
	interviewUsecase "github.com/johnquangdev/interview-assistant/internal/usecase/interview"
)

// Interview handles participant-side HTTP requests, gated by the session access token
type Interview struct {
	interviewService interviewUsecase.Service
	logger           *zap.Logger
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(interviewService interviewUsecase.Service, logger *zap.Logger) *Interview {
	return &Interview{
		interviewService: interviewService,
		logger:           logger,
	}
}

// Preview handles GET /interview/:token
// @Summary      Preview an interview
// @Description  Participant view of a session before joining. Never includes the access token.
// @Tags         Interview
// @Produce      json
// @Param        token  path      string  true  "Session access token"
// @Success      200    {object}  common.SuccessResponse{data=interview.SessionPreviewResponse}
// @Failure      404    {object}  common.ErrorResponse  "Session not found"
// @Router       /interview/{token} [get]
func (h *Interview) Preview(c echo.Context) error {
	preview, err := h.interviewService.Preview(c.Request().Context(), c.Param("token"))
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToSessionPreviewResponse(preview.Session, preview.Bot))
}

// Join handles POST /interview/:token/join
// @Summary      Join an interview
// @Description  Admits a participant and returns the first question
// @Tags         Interview
// @Accept       json
// @Produce      json
// @Param        token    path      string                        true   "Session access token"
// @Param        request  body      interview.JoinSessionRequest  false  "Participant data"
// @Success      201      {object}  common.SuccessResponse{data=interview.JoinSessionResponse}
// @Failure      404      {object}  common.ErrorResponse  "Session not found"
// @Failure      409      {object}  common.ErrorResponse  "Session already completed"
// @Failure      410      {object}  common.ErrorResponse  "Session expired"
// @Failure      429      {object}  common.ErrorResponse  "Session full"
// @Router       /interview/{token}/join [post]
func (h *Interview) Join(c echo.Context) error {
	// The body is optional
	var req interview.JoinSessionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.interviewService.Join(c.Request().Context(), interviewUsecase.JoinInput{
		Token:       c.Param("token"),
		UserID:      optionalUserID(c),
		AnonymousID: req.AnonymousID,
		Email:       req.Email,
		Name:        req.Name,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	return HandleCreated(h.logger, c, presenter.ToJoinSessionResponse(result))
}

// SubmitResponse handles POST /interview/responses
// @Summary      Submit an answer
// @Description  Records the answer to the current question and returns the next one
// @Tags         Interview
// @Accept       json
// @Produce      json
// @Param        request  body      interview.SubmitResponseRequest  true  "Answer"
// @Success      200      {object}  common.SuccessResponse{data=interview.SubmitResponseResponse}
// @Failure      404      {object}  common.ErrorResponse  "Participant session not found"
// @Failure      409      {object}  common.ErrorResponse  "Question index mismatch or participant completed"
// @Failure      422      {object}  common.ErrorResponse  "Empty response"
// @Router       /interview/responses [post]
func (h *Interview) SubmitResponse(c echo.Context) error {
	var req interview.SubmitResponseRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidConfig(err))
	}

	participantID := uuid.MustParse(req.ParticipantSessionID)

	result, err := h.interviewService.SubmitResponse(c.Request().Context(), interviewUsecase.SubmitResponseInput{
		ParticipantSessionID: participantID,
		QuestionIndex:        *req.QuestionIndex,
		Text:                 strings.TrimSpace(req.Response),
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, participantID.String()))
	}

	return HandleSuccess(h.logger, c, presenter.ToSubmitResponseResponse(result))
}

// GetProgress handles GET /interview/participants/:id/progress
// @Summary      Get participant progress
// @Tags         Interview
// @Produce      json
// @Param        id   path      string  true  "Participant session ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=interview.ProgressResponse}
// @Failure      400  {object}  common.ErrorResponse  "Invalid participant session ID"
// @Failure      404  {object}  common.ErrorResponse  "Participant session not found"
// @Router       /interview/participants/{id}/progress [get]
func (h *Interview) GetProgress(c echo.Context) error {
	participantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("participant session ID must be a valid UUID"))
	}

	progress, err := h.interviewService.GetProgress(c.Request().Context(), participantID)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, participantID.String()))
	}

	return HandleSuccess(h.logger, c, presenter.ToProgressResponse(progress))
}
