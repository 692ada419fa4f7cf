package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"todovault/todo-service/internal/api/repository"
)

// Error translates any failure into the uniform envelope and aborts the
// request. Unexpected failures are logged with full detail; the client only
// ever sees the envelope.
func Error(c *gin.Context, err error) {
	env := Map(err)
	if env.StatusCode >= 500 {
		slog.Error("request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}
	c.AbortWithStatusJSON(env.StatusCode, env)
}

// Map evaluates the error translation table in precedence order:
// explicit AppError first, then validation failures, then database engine
// failures, and finally the catch-all internal error.
func Map(err error) Envelope {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return NewEnvelope(appErr.Status, appErr.Code, appErr.Message, appErr.Context)
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		field := "unknown"
		context := map[string]any{}
		if len(verrs) > 0 {
			field = strings.ToLower(verrs[0].Field())
			context["field"] = field
			context["rule"] = verrs[0].Tag()
		}
		return NewEnvelope(422, "VALIDATION_ERROR",
			fmt.Sprintf("Validation error for field '%s'", field), context)
	}

	if isMalformedBody(err) {
		return NewEnvelope(400, "BAD_REQUEST", "Invalid request body", nil)
	}

	var dbErr *repository.DBError
	if errors.As(err, &dbErr) {
		return mapDBError(dbErr)
	}

	return NewEnvelope(500, "INTERNAL_SERVER_ERROR", "An unexpected error occurred", nil)
}

// mapDBError parses the engine's diagnostic text. Pre-write existence checks
// normally catch duplicates first, but a concurrent registration can slip
// past them and surface here as a raw UNIQUE constraint violation.
func mapDBError(dbErr *repository.DBError) Envelope {
	msg := dbErr.Err.Error()

	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: users.username"):
		return NewEnvelope(409, "USERNAME_ALREADY_EXISTS",
			"A user with this username already exists", nil)

	case strings.Contains(msg, "UNIQUE constraint failed: users.email"):
		return NewEnvelope(409, "EMAIL_ALREADY_EXISTS",
			"A user with this email already exists", nil)

	case strings.Contains(msg, "UNIQUE constraint failed"):
		return NewEnvelope(409, "DUPLICATE_RECORD",
			"A record with these details already exists", nil)

	case strings.Contains(msg, "NOT NULL constraint failed"):
		field := notNullField(msg)
		return NewEnvelope(422, "REQUIRED_FIELD_MISSING",
			fmt.Sprintf("Field '%s' is required and cannot be null", field),
			map[string]any{"field": field})

	case strings.Contains(msg, "constraint failed"):
		return NewEnvelope(400, "CONSTRAINT_VIOLATION",
			"Database constraint violation",
			map[string]any{"details": msg})

	default:
		// Diagnostic text withheld from the client for generic engine
		// failures.
		return NewEnvelope(500, "DATABASE_ERROR", "Database operation failed", nil)
	}
}

// notNullField extracts the offending column from messages shaped like
// "NOT NULL constraint failed: todos.title (1299)".
func notNullField(msg string) string {
	const marker = "NOT NULL constraint failed: "
	idx := strings.Index(msg, marker)
	if idx < 0 {
		return "unknown"
	}
	rest := msg[idx+len(marker):]
	if cut := strings.IndexByte(rest, ' '); cut > 0 {
		rest = rest[:cut]
	}
	if dot := strings.IndexByte(rest, '.'); dot >= 0 {
		return rest[dot+1:]
	}
	return "unknown"
}

func isMalformedBody(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
