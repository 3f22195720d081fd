// Package errxfiber renders errx errors as fiber responses
package errxfiber

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
)

// ErrorHandler converts internal errors to standard HTTP responses
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Fiber errors (route not found, body too large)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	if e, ok := errx.As(err); ok {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.With("path", c.Path(), "method", c.Method()).Errorf("request failed: %v", err)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}

// NewApp returns a fiber app wired with ErrorHandler
func NewApp(appName string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
		BodyLimit:             20 * 1024 * 1024,
	})
}
