package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeError maps domain errors onto HTTP statuses. Unknown errors are
// logged and returned as an opaque 500.
func writeError(c *gin.Context, log *slog.Logger, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		fields := make(map[string]string, len(validation.Errors))
		for _, fe := range validation.Errors {
			fields[fe.Field] = fe.Message
		}
		c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: fields,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse{Error: "conflict"})
	default:
		log.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// writeBindError reports request decoding/binding failures as 422s so the
// client sees them the same way as service-level validation.
func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "invalid request: " + err.Error()})
}
