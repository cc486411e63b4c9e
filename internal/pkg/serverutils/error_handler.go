package serverutils

import (
	"errors"

	"ai-workspace-be/internal/pkg/apperror"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/pkg/token"
	"ai-workspace-be/pkg/database"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Classify maps any error returned by a handler onto the closed error set.
func Classify(err error) *apperror.Error {
	if appErr, ok := apperror.As(err); ok {
		return appErr
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return FromValidationErrors(validationErrors)
	}

	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, token.ErrExpiredToken):
		return apperror.Unauthenticated(apperror.CodeTokenExpired, "Token expired")
	case errors.Is(err, token.ErrMissingToken):
		return apperror.Unauthenticated(apperror.CodeUnauthorized, "Missing token")
	case errors.Is(err, token.ErrUnauthenticated):
		return apperror.Unauthenticated(apperror.CodeInvalidToken, "Invalid token")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Wrap(apperror.KindConflict, apperror.CodeDuplicate, "Resource already exists", err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(apperror.CodeNotFound, "Resource not found")
	case errors.Is(err, database.ErrUnavailable):
		return apperror.Unavailable(apperror.CodeServiceUnavailable, "Database unavailable", err)
	case errors.As(err, &fiberErr):
		return fromFiberError(fiberErr)
	}
	return apperror.Internal(err)
}

func fromFiberError(e *fiber.Error) *apperror.Error {
	switch e.Code {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return apperror.Validation(apperror.CodeInvalidBody, e.Message)
	case fiber.StatusUnauthorized:
		return apperror.Unauthenticated("", e.Message)
	case fiber.StatusForbidden:
		return apperror.Forbidden(e.Message)
	case fiber.StatusNotFound:
		return apperror.NotFound("", e.Message)
	case fiber.StatusRequestEntityTooLarge:
		return apperror.Validation(apperror.CodeInvalidBody, e.Message)
	case fiber.StatusTooManyRequests:
		return apperror.TooManyRequests(e.Message)
	case fiber.StatusServiceUnavailable:
		return apperror.Unavailable("", e.Message, nil)
	}
	if e.Code >= 400 && e.Code < 500 {
		return apperror.Validation("", e.Message)
	}
	return apperror.Internal(e)
}

// NewErrorHandler renders errors as {success:false, error, code}. Internal
// failures are logged with their cause and answered with a generic message.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		appErr := Classify(err)

		if appErr.Kind == apperror.KindInternal || appErr.Kind == apperror.KindUnavailable || appErr.Kind == apperror.KindUpstream {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"code":   appErr.Code,
				"error":  err,
			})
		}

		return ctx.Status(appErr.Status()).JSON(ErrorResponse(appErr.Code, appErr.Message))
	}
}

// ErrorHandlerMiddleware renders errors returned further down the chain, so
// middlewares above it see a finished response.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handle := NewErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return handle(ctx, err)
		}
		return nil
	}
}
