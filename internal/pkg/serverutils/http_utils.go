package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a parsed request body.
func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}

// ErrorResponse is the single error envelope exposed to clients.
type ErrorResponse struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// ErrorHandlerMiddleware collapses every uncaught handler error into the
// generic error envelope. Validation errors become 400s, everything else a
// 500; no finer taxonomy is exposed.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Type:  "error",
				Error: vErrs.Error(),
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Type:  "error",
			Error: fmt.Sprintf("An internal server error occurred: %v", err),
		})
	}
}
