/*
Package response is the single place where service errors become HTTP
responses.

Success bodies wrap the payload in a {"data": ...} envelope. Error bodies
carry the ordered field-error list:

	{"errors": [{"fieldName": "birthDate", "message": "..."}]}

Internal causes are logged with the request id and never serialized to the
client.
*/
package response

import (
	"net/http"

	"github.com/nesmy/users-api/pkg/apierr"
	"github.com/nesmy/users-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// Envelope wraps every successful payload in the data field.
type Envelope struct {
	Data interface{} `json:"data"`
}

// ErrorBody is the error response body.
type ErrorBody struct {
	Errors []apierr.FieldError `json:"errors"`
}

// RequestID returns the request id set by the middleware, or "".
func RequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// Data writes a success envelope with the given status.
func Data(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, Envelope{Data: payload})
}

// Text writes a plain-text body.
func Text(c *gin.Context, status int, body string) {
	c.String(status, body)
}

// HandleError maps a service error to its HTTP status and writes the
// field-error list.
func HandleError(c *gin.Context, err error) {
	apiErr, ok := apierr.As(err)
	if !ok {
		apiErr = apierr.Internal(err)
	}
	status := apiErr.HTTPStatus()

	fields := []zap.Field{
		zap.String("request_id", RequestID(c)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("error_code", string(apiErr.Code)),
		zap.Int("http_status", status),
	}
	if apiErr.Err != nil {
		fields = append(fields, zap.Error(apiErr.Err))
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields...)
	} else {
		logger.Warn("Request rejected", fields...)
	}

	body := ErrorBody{Errors: apiErr.Errors}
	if body.Errors == nil {
		body.Errors = []apierr.FieldError{}
	}
	c.JSON(status, body)
}

// BadRequest reports a transport-level failure such as a malformed body or
// an unparseable parameter.
func BadRequest(c *gin.Context, field, message string) {
	HandleError(c, apierr.BadRequest(field, message))
}
