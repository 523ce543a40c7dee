package errxfiber

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reqcraft/reqcraft/errx"
)

// requestIDKey is the Locals key under which the request correlation id is stored.
const requestIDKey = "reqcraft_request_id"

// RequestID returns the correlation id assigned to the request, or an empty
// string when the RequestLogger middleware is not installed.
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ErrorHandler creates a Fiber error handler that renders every error into
// the standard response envelope.
//
// Known *errx.Error values are rendered as-is with their status and code.
// Fiber's own routing errors (404, 405, body limits) are mapped onto the HTTP
// error hierarchy. Anything else is treated as an unhandled fault: it is
// logged server-side together with a correlation id and the client receives
// an opaque 500 envelope. Internal fault detail never reaches the caller.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var xerr *errx.Error
		if errors.As(err, &xerr) {
			env := xerr.Envelope()
			return c.Status(env.StatusCode).JSON(env)
		}

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			env := fiberToEnvelope(ferr)
			return c.Status(env.StatusCode).JSON(env)
		}

		id := RequestID(c)
		if id == "" {
			id = uuid.NewString()
		}
		log.Error("unhandled error",
			zap.String("request_id", id),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		env := errx.HTTPErrors.New(errx.ErrInternalServerError).Envelope()
		return c.Status(env.StatusCode).JSON(env)
	}
}

// fiberToEnvelope maps the framework's own errors onto the HTTP hierarchy so
// routing failures share the envelope contract with application errors.
func fiberToEnvelope(ferr *fiber.Error) errx.Envelope {
	switch ferr.Code {
	case fiber.StatusNotFound:
		return errx.HTTPErrors.New(errx.ErrNotFound).Envelope()
	case fiber.StatusMethodNotAllowed:
		return errx.HTTPErrors.New(errx.ErrMethodNotAllowed).Envelope()
	case fiber.StatusUnsupportedMediaType:
		return errx.HTTPErrors.New(errx.ErrUnsupportedMedia).Envelope()
	default:
		xerr := errx.HTTPErrors.New(errx.ErrBadRequest)
		if ferr.Code >= 500 {
			xerr = errx.HTTPErrors.New(errx.ErrInternalServerError)
		} else if ferr.Message != "" {
			xerr = xerr.WithMessage(ferr.Message)
		}
		env := xerr.Envelope()
		env.StatusCode = ferr.Code
		return env
	}
}

// RequestLogger creates a middleware that assigns a correlation id to every
// request and logs one line per request/response pair.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := uuid.NewString()
		c.Locals(requestIDKey, id)
		c.Set("X-Request-Id", id)

		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.Info("request",
			zap.String("request_id", id),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return nil
	}
}

// Recover converts downstream panics into errors so a panicking handler
// still answers with the opaque 500 envelope instead of tearing down the
// connection. Mount it before RequestLogger.
func Recover() fiber.Handler {
	return recover.New()
}

// NotFoundHandler terminates a handler chain with the standard 404 envelope.
// Mount it last so unmatched paths share the error contract.
func NotFoundHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return errx.HTTPErrors.New(errx.ErrNotFound)
	}
}

// MethodNotAllowedHandler terminates a handler chain with the standard 405
// envelope, for paths that exist under other methods.
func MethodNotAllowedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return errx.HTTPErrors.New(errx.ErrMethodNotAllowed)
	}
}

// BadRequestHandler terminates a handler chain with the standard 400 envelope.
func BadRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return errx.HTTPErrors.New(errx.ErrBadRequest)
	}
}
