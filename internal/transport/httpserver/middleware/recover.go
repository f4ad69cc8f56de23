package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"video-discovery-service/internal/transport/httpserver/dto"
)

// Recover converts handler panics into a 500 response instead of killing the
// connection, logging the stack for the offending route.
func Recover(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			logger.Error("panic recovered",
				zap.Any("error", r),
				zap.String("path", c.Path()),
				zap.String("stack", string(debug.Stack())),
			)

			err = c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "internal server error",
				Code:  "PANIC",
			})
		}()

		return c.Next()
	}
}
