package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/errors"
	"github.com/johnquangdev/interview-assistant/internal/adapter/dto/common"
	usecaseErrors "github.com/johnquangdev/interview-assistant/internal/usecase/errors"
)

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// currentUserID reads the authenticated user set by the auth middleware
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}

// optionalUserID returns the authenticated user, if any
func optionalUserID(c echo.Context) *uuid.UUID {
	if userID, ok := currentUserID(c); ok {
		return &userID
	}
	return nil
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusOK, data)
}

// HandleCreated writes a standardized success response with 201 Created
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusCreated, data)
}

func respond(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := common.SuccessResponse{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			log := logger.Warn
			if appErr.HTTPCode >= http.StatusInternalServerError {
				log = logger.Error
			}
			log("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil && appErr.HTTPCode < http.StatusInternalServerError {
			info = appErr.Raw.Error()
		}

		body := common.ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := common.ErrorResponse{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// toAppError translates usecase errors into HTTP errors.
// id names the resource the request addressed and is attached as detail.
func toAppError(err error, id string) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrBotNotFound):
		return errors.ErrBotNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrSessionNotFound):
		return errors.ErrSessionNotFound()
	case stdErrors.Is(err, usecaseErrors.ErrParticipantNotFound):
		return errors.ErrParticipantNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrSessionExpired):
		return errors.ErrSessionExpired(id)
	case stdErrors.Is(err, usecaseErrors.ErrSessionCompleted):
		return errors.ErrSessionCompleted(id)
	case stdErrors.Is(err, usecaseErrors.ErrParticipantCompleted):
		return errors.ErrParticipantCompleted(id)
	case stdErrors.Is(err, usecaseErrors.ErrSessionFull):
		return errors.ErrSessionFull(id)
	case stdErrors.Is(err, usecaseErrors.ErrSequenceMismatch):
		return errors.ErrSequenceMismatch(id)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidConfig):
		return errors.ErrInvalidConfig(err)
	case stdErrors.Is(err, usecaseErrors.ErrNotFound):
		return errors.ErrNotFound("resource")
	case stdErrors.Is(err, usecaseErrors.ErrUnauthorized):
		return errors.ErrUnauthenticated()
	case stdErrors.Is(err, usecaseErrors.ErrForbidden):
		return errors.ErrPermissionDenied("access resource")
	}

	return errors.ErrInternal(err)
}
