package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/interfaces/http/dto"
)

// Custom validation tags
const (
	TagISODate       = "isodate"
	TagSalesCategory = "salescategory"
)

// SetupValidator configures gin's validator with field naming from
// form/json tags and the custom isodate and salescategory rules.
// Calling it more than once is harmless.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(TagISODate, validateISODate)
	_ = v.RegisterValidation(TagSalesCategory, validateSalesCategory)
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(sales.DateLayout, fl.Field().String())
	return err == nil
}

func validateSalesCategory(fl validator.FieldLevel) bool {
	_, err := sales.ParseCategory(fl.Field().String())
	return err == nil
}

// HandleValidationError writes a 400 response for a query binding error.
// A missing required parameter yields the missing-date-range message,
// any other rule violation lists the offending fields in details.
func HandleValidationError(c *gin.Context, err error) {
	if IsMissingField(err) {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.MsgMissingDateRange))
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
		dto.MsgInvalidQuery,
		strings.Join(FieldMessages(err), "; "),
	))
}

// IsMissingField reports whether err contains a failed required rule
func IsMissingField(err error) bool {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false
	}
	for _, e := range validationErrors {
		if e.Tag() == "required" {
			return true
		}
	}
	return false
}

// FieldMessages formats validation errors as "field: message" strings.
// Errors that are not validation errors are returned as a single message.
func FieldMessages(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, e.Field()+": "+getValidationMessage(e))
	}
	return messages
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case TagISODate:
		return "Must be a date in YYYY-MM-DD format"
	case TagSalesCategory:
		return sales.ErrUnknownCategory.Message
	case "oneof":
		return "Must be one of: " + e.Param()
	default:
		return "Invalid value"
	}
}
