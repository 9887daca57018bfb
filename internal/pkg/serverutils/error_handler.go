package serverutils

import (
	"errors"

	"ancestral-travel-be/internal/dto"
	"ancestral-travel-be/internal/service"
	"ancestral-travel-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbled up from controllers into the
// API error envelope. Controllers return plain errors; the mapping to HTTP
// status lives here so every route behaves the same.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, validationErr.Msg))
		}

		var parseErr *service.ParseError
		if errors.As(err, &parseErr) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(fiber.StatusUnprocessableEntity, parseErr.Msg))
		}

		if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrUserNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, err.Error()))
		}

		var limitErr *dto.LimitExceededError
		if errors.As(err, &limitErr) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(dto.LimitExceededResponse{
				Success:   false,
				Code:      fiber.StatusTooManyRequests,
				Message:   limitErr.Reason,
				ErrorType: "limit_exceeded",
				Data:      limitErr.Usage,
			})
		}

		var llmErr *llm.Error
		if errors.As(err, &llmErr) {
			return ctx.Status(llmStatus(llmErr)).JSON(ErrorResponse(llmStatus(llmErr), llmErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}

func llmStatus(err *llm.Error) int {
	switch err.Kind {
	case llm.ErrKindAuth:
		return fiber.StatusBadGateway
	case llm.ErrKindRateLimit, llm.ErrKindQuota:
		return fiber.StatusTooManyRequests
	case llm.ErrKindTimeout:
		return fiber.StatusGatewayTimeout
	case llm.ErrKindNotFound, llm.ErrKindTransient:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
