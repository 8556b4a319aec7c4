package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var fieldMessages = map[string]string{
	"required": "field is required",
	"email":    "invalid email format",
	"gt":       "value must be greater than zero",
}

// BindError writes a 400 for a failed request binding. Validator errors
// are broken out per field; anything else (malformed JSON, type
// mismatches) gets a generic message.
func BindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]FieldError, 0, len(validationErrs))
		for _, e := range validationErrs {
			msg := fieldMessages[e.Tag()]
			if msg == "" {
				msg = e.Error()
			}
			fields = append(fields, FieldError{Field: e.Field(), Message: msg})
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"errors": fields,
		})
		c.Error(err)
		return
	}

	c.JSON(http.StatusBadRequest, NewErrorResponse("invalid request body"))
	c.Error(err)
}
