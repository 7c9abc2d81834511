package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/errors"
	"github.com/johnquangdev/interview-assistant/internal/adapter/dto/common"
	"github.com/johnquangdev/interview-assistant/internal/adapter/dto/interview"
	"github.com/johnquangdev/interview-assistant/internal/adapter/presenter"
	interviewUsecase "github.com/johnquangdev/interview-assistant/internal/usecase/interview"
	"github.com/johnquangdev/interview-assistant/pkg/middleware"
)

// Session handles owner-side interview session HTTP requests
type Session struct {
	interviewService interviewUsecase.Service
	logger           *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(interviewService interviewUsecase.Service, logger *zap.Logger) *Session {
	return &Session{
		interviewService: interviewService,
		logger:           logger,
	}
}

// CreateSession handles POST /sessions
// @Summary      Create an interview session
// @Description  Compiles the bot's questions into a script and returns the session with its access token
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      interview.CreateSessionRequest  true  "Session settings"
// @Success      201      {object}  common.SuccessResponse{data=interview.SessionResponse}
// @Failure      400      {object}  common.ErrorResponse  "Malformed body"
// @Failure      404      {object}  common.ErrorResponse  "Bot not found"
// @Failure      422      {object}  common.ErrorResponse  "Invalid session configuration"
// @Router       /sessions [post]
func (h *Session) CreateSession(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req interview.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidConfig(err))
	}

	// Validated as UUIDs above
	botID := uuid.MustParse(req.BotID)
	var personaID *uuid.UUID
	if req.PersonaID != nil {
		id := uuid.MustParse(*req.PersonaID)
		personaID = &id
	}

	session, err := h.interviewService.CreateSession(c.Request().Context(), interviewUsecase.CreateSessionInput{
		OwnerID:           userID,
		BotID:             botID,
		PersonaID:         personaID,
		Title:             req.Title,
		Description:       req.Description,
		ResearchFocus:     req.ResearchFocus,
		ExpiresInHours:    req.ExpiresIn,
		MaxParticipants:   req.MaxParticipants,
		EstimatedDuration: req.EstimatedDuration,
		ParticipantEmail:  req.ParticipantEmail,
		ParticipantName:   req.ParticipantName,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, req.BotID))
	}

	return HandleCreated(h.logger, c, presenter.ToSessionResponse(session))
}

// ListSessions handles GET /sessions
// @Summary      List interview sessions
// @Description  Lists the caller's sessions, newest first
// @Tags         Sessions
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page number (default: 1)"
// @Param        page_size  query     int  false  "Items per page (default: 20)"
// @Success      200        {object}  common.SuccessResponse{data=interview.SessionListResponse}
// @Failure      401        {object}  common.ErrorResponse  "User not authenticated"
// @Router       /sessions [get]
func (h *Session) ListSessions(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var page common.PaginationRequest
	if err := c.Bind(&page); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	if err := c.Validate(&page); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	limit, offset := page.Normalize()

	sessions, total, err := h.interviewService.ListSessions(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToSessionListResponse(sessions, total, page.Page, page.PageSize))
}

// GetSession handles GET /sessions/:id
// @Summary      Get an interview session
// @Description  Owner view of a session, including its access token, script and participants
// @Tags         Sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=interview.SessionDetailResponse}
// @Failure      400  {object}  common.ErrorResponse  "Invalid session ID"
// @Failure      404  {object}  common.ErrorResponse  "Session not found"
// @Router       /sessions/{id} [get]
func (h *Session) GetSession(c echo.Context) error {
	// Loaded by RequireSessionOwner
	if detail, ok := c.Get(middleware.SessionDetailKey).(*interviewUsecase.SessionDetail); ok {
		return HandleSuccess(h.logger, c, presenter.ToSessionDetailResponse(detail))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("session ID must be a valid UUID"))
	}

	detail, err := h.interviewService.GetSession(c.Request().Context(), userID, sessionID)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, sessionID.String()))
	}

	return HandleSuccess(h.logger, c, presenter.ToSessionDetailResponse(detail))
}
