package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/errors"
	"github.com/johnquangdev/interview-assistant/internal/adapter/dto/bot"
	"github.com/johnquangdev/interview-assistant/internal/adapter/dto/common"
	"github.com/johnquangdev/interview-assistant/internal/adapter/presenter"
	botUsecase "github.com/johnquangdev/interview-assistant/internal/usecase/bot"
)

// Bot handles interview bot HTTP requests
type Bot struct {
	botService botUsecase.Service
	logger     *zap.Logger
}

// NewBotHandler creates a new bot handler
func NewBotHandler(botService botUsecase.Service, logger *zap.Logger) *Bot {
	return &Bot{
		botService: botService,
		logger:     logger,
	}
}

// CreateBot handles POST /bots
// @Summary      Create an interview bot
// @Description  Validates and stores a bot definition owned by the caller
// @Tags         Bots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      bot.CreateBotRequest  true  "Bot definition"
// @Success      201      {object}  common.SuccessResponse{data=bot.BotResponse}
// @Failure      400      {object}  common.ErrorResponse  "Malformed body"
// @Failure      401      {object}  common.ErrorResponse  "User not authenticated"
// @Failure      422      {object}  common.ErrorResponse  "Invalid bot configuration"
// @Router       /bots [post]
func (h *Bot) CreateBot(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req bot.CreateBotRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidConfig(err))
	}

	input := presenter.ToCreateBotInput(&req)
	input.OwnerID = userID

	created, err := h.botService.CreateBot(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	return HandleCreated(h.logger, c, presenter.ToBotResponse(created))
}

// GetBot handles GET /bots/:id
// @Summary      Get an interview bot
// @Tags         Bots
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bot ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=bot.BotResponse}
// @Failure      400  {object}  common.ErrorResponse  "Invalid bot ID"
// @Failure      404  {object}  common.ErrorResponse  "Bot not found"
// @Router       /bots/{id} [get]
func (h *Bot) GetBot(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	botID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("bot ID must be a valid UUID"))
	}

	b, err := h.botService.GetBot(c.Request().Context(), userID, botID)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, botID.String()))
	}

	return HandleSuccess(h.logger, c, presenter.ToBotResponse(b))
}

// ListBots handles GET /bots
// @Summary      List interview bots
// @Description  Lists the caller's active bots, newest first, with their session counts
// @Tags         Bots
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page number (default: 1)"
// @Param        page_size  query     int  false  "Items per page (default: 20)"
// @Success      200        {object}  common.SuccessResponse{data=bot.BotListResponse}
// @Failure      401        {object}  common.ErrorResponse  "User not authenticated"
// @Router       /bots [get]
func (h *Bot) ListBots(c echo.Context) error {
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

	summaries, err := h.botService.ListBots(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToBotListResponse(summaries, page.Page, page.PageSize))
}
