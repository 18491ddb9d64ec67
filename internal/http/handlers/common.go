package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"igreja_backend/internal/domain"
	"igreja_backend/internal/logger"
)

// Envelope is the uniform response shape of every endpoint. On failure the
// human-readable text always travels under "error"; "message" only decorates
// successes.
type Envelope struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Error   string              `json:"error,omitempty"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// RespondOK wraps a read/update/delete success.
func RespondOK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

// RespondCreated wraps a create success.
func RespondCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data, Message: message})
}

// RespondError sends a failure envelope with the given status.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Error: message})
}

// RespondDomainError maps a domain error to its status and envelope. Every
// handler funnels failures through here; none formats error JSON itself.
func RespondDomainError(c *gin.Context, err error) {
	var verr domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: verr.Error(), Details: verr.Fields})
		return
	}

	switch {
	case domain.IsAuth(err):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case domain.IsForbidden(err):
		RespondError(c, http.StatusForbidden, err.Error())
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, err.Error())
	case domain.IsUpstream(err):
		RespondError(c, http.StatusInternalServerError, err.Error())
	default:
		logger.FromGin(c).Error().Err(err).Msg("erro inesperado")
		RespondError(c, http.StatusInternalServerError, "erro interno")
	}
}

// BindObject reads the request body as a JSON object. The empty body and
// non-object payloads are validation errors.
func BindObject(c *gin.Context) (map[string]any, bool) {
	var input map[string]any
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondDomainError(c, domain.NewValidationError("body", "payload inválido"))
		return nil, false
	}
	return input, true
}

// IDParam parses the :id route parameter.
func IDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.NewValidationError("id", "identificador inválido"))
		return 0, false
	}
	return id, true
}
