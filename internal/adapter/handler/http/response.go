package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error" example:"not found: vehicle"`
}

type successResponse struct {
	Message string      `json:"message" example:"Vehicle created successfully"`
	Data    interface{} `json:"data,omitempty"`
	Warning string      `json:"warning,omitempty" example:"mileage was not updated"`
}

func newErrorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: message})
}

func newSuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, successResponse{Message: message, Data: data})
}

func newPartialResponse(c *gin.Context, status int, message string, data interface{}, warning string) {
	c.JSON(status, successResponse{Message: message, Data: data, Warning: warning})
}

func init() {
	// Report binding failures by their JSON names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// newBindErrorResponse answers 400 for a request body that failed to bind.
// Failed binding rules name the offending field; anything else is a syntax
// or type error.
func newBindErrorResponse(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			newErrorResponse(c, http.StatusBadRequest, fmt.Sprintf("field %s is required", fe.Field()))
			return
		}
		newErrorResponse(c, http.StatusBadRequest, fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag()))
		return
	}
	newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
}

// errorStatus maps domain errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDependency):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes err with its mapped status. Server side failures get a
// generic message.
func handleError(c *gin.Context, err error) {
	status := errorStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	newErrorResponse(c, status, message)
}
