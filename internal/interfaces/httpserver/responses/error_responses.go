package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taborra-server/whatsapp-bridge/internal/infrastructure/logger"
	"taborra-server/whatsapp-bridge/internal/utils/platformerrors"
)

// ErrorResponse represents an error response with platform error details
type ErrorResponse struct {
	Code      string `json:"code,omitempty"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleError maps domain errors onto sanitized HTTP responses. The caller
// only ever sees the status code and a generic message; the cause is logged.
func HandleError(reqCtx *gin.Context, err error, message string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		platformerrors.LogError(logger.GetLogger(), domainErr)
		statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType())

		reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{
			Code:      domainErr.GetUUID(),
			Error:     message,
			RequestID: domainErr.GetRequestID(),
		})
		return
	}

	log := logger.GetLogger()
	log.Error().Err(err).Msg(message)
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}
