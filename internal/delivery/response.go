package delivery

import (
	"errors"
	"net/http"
	"runtime/debug"

	"catalog_service/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	// stackTraceKey marks requests whose 5xx responses carry a stack trace.
	stackTraceKey = "exposeStack"
)

type Response struct {
	Status  string      `json:"status"`
	Results *int        `json:"results,omitempty"`
	Data    interface{} `json:"data"`
}

type ErrorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Status: statusSuccess,
		Data:   data,
	})
}

// ListResponse adds the element count to the envelope.
func ListResponse(c *gin.Context, statusCode int, count int, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  statusSuccess,
		Results: &count,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	abortWithError(c, statusCode, message, nil)
}

// abortWithError writes the error envelope. When stack traces are enabled,
// server errors always carry one and other statuses only when stack is given.
func abortWithError(c *gin.Context, statusCode int, message string, stack []byte) {
	body := ErrorBody{
		Status:  statusError,
		Message: message,
	}
	if c.GetBool(stackTraceKey) && (stack != nil || statusCode >= http.StatusInternalServerError) {
		if stack == nil {
			stack = debug.Stack()
		}
		body.Stack = string(stack)
	}
	c.AbortWithStatusJSON(statusCode, body)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
