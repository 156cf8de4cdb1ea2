package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	pkgerrors "simple-crud-api/pkg/errors"
	"simple-crud-api/pkg/i18n"
	"simple-crud-api/pkg/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Path    string `json:"path,omitempty"`
}

// bindJSON decodes the request body into obj and validates it. An empty body
// decodes to the zero value and is still validated, so missing fields are
// reported as such. Failures are returned as *pkgerrors.ValidationError.
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return pkgerrors.NewValidationError(strings.ToLower(verrs[0].Field()), "is required")
	}
	return pkgerrors.NewValidationError("", err.Error())
}

// writeError converts usecase errors to localized HTTP responses.
func writeError(c *gin.Context, tr *i18n.Translator, log *zap.Logger, err error) {
	var (
		ve *pkgerrors.ValidationError
		nf *pkgerrors.NotFoundError
	)

	switch {
	case errors.As(err, &ve):
		msg := tr.T(i18n.InvalidBody)
		if ve.Field != "" {
			msg = tr.T(i18n.MissingField, ve.Field)
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	case errors.As(err, &nf):
		key := i18n.UserNotFound
		if nf.Resource == "item" {
			key = i18n.ItemNotFound
		}
		c.JSON(http.StatusNotFound, ErrorResponse{Error: tr.T(key)})
	default:
		logger.WithContext(c.Request.Context(), log).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(pkgerrors.StatusOf(err), ErrorResponse{
			Error:   tr.T(i18n.InternalErrorTitle),
			Message: tr.T(i18n.InternalErrorDetail),
		})
	}
}
