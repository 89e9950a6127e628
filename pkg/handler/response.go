package handler

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"exchange_back/models"
	"exchange_back/pkg/middleware"
	"exchange_back/pkg/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Error struct {
	Error   string              `json:"error"`
	Details []models.FieldError `json:"details,omitempty"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string, details ...models.FieldError) {
	logrus.WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(c),
		"status":     statusCode,
	}).Warn(message)
	c.AbortWithStatusJSON(statusCode, Error{Error: message, Details: details})
}

func wrapOkJSON(c *gin.Context, response map[string]interface{}) {
	c.JSON(http.StatusOK, response)
}

// fail maps a service error to its status. Anything that is not a
// *service.Error is logged and answered with a bare 500.
func (h *Handler) fail(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		logrus.WithError(err).WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(c),
			"path":       c.FullPath(),
		}).Error("internal error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, Error{Error: "internal server error"})
		return
	}

	status := http.StatusBadRequest
	switch svcErr.Kind {
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindConflict:
		status = http.StatusConflict
	case service.KindUnauthorized:
		status = http.StatusUnauthorized
	case service.KindForbidden:
		status = http.StatusForbidden
	}
	newErrorResponse(c, status, svcErr.Message, svcErr.Details...)
}

// bindError answers a failed ShouldBind. Validation failures list every
// offending field; anything else is a malformed body.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	details := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, models.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	newErrorResponse(c, http.StatusBadRequest, "Validation failed", details...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	case "uuid":
		return fe.Field() + " must be a valid id"
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

var registerValidation sync.Once

// setupValidator makes validation errors report json/form field names and lets
// numeric tags apply to decimal amounts.
func setupValidator() {
	registerValidation.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
	})
}
