package middleware

import (
	"strconv"

	"github.com/FeedbackLens/feedback-lens-backend/errors"
	"github.com/FeedbackLens/feedback-lens-backend/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into structured
// JSON responses. Handlers report failures with c.Error and return; this
// middleware owns the status code and response shape.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		fields := []interface{}{
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey),
		}

		if appError, ok := err.(*errors.AppError); ok {
			statusCode := appError.GetHTTPStatus()

			logFields := append(fields,
				"error_type", string(appError.Type),
				"error_message", appError.Message,
			)
			if appError.Detail != "" {
				logFields = append(logFields, "error_detail", appError.Detail)
			}
			if statusCode >= 500 {
				log.Errorw("Request failed", logFields...)
			} else {
				log.Warnw("Request rejected", logFields...)
			}

			response := gin.H{
				"type":    string(appError.Type),
				"message": appError.Message,
				"code":    strconv.Itoa(statusCode),
			}
			if appError.Code != "" {
				response["code"] = appError.Code
			}

			// Details are safe to expose for client-side errors; server-side
			// details stay in the logs unless running in debug mode.
			if appError.Detail != "" && (gin.IsDebugging() ||
				appError.Type == errors.ValidationError ||
				appError.Type == errors.NotFoundError) {
				response["details"] = appError.Detail
			}

			c.JSON(statusCode, response)
			return
		}

		// Gin binding errors surface as validation failures.
		if c.Errors.Last().Type == gin.ErrorTypeBind {
			log.Warnw("Request binding error", append(fields, "error", err)...)

			response := gin.H{
				"type":    string(errors.ValidationError),
				"message": "Failed to bind request",
				"code":    "400",
			}
			if gin.IsDebugging() {
				response["details"] = err.Error()
			}

			c.JSON(400, response)
			return
		}

		log.Errorw("Unexpected server error", append(fields, "error", err)...)

		response := gin.H{
			"type":    string(errors.ServerError),
			"message": "Internal Server Error",
			"code":    "500",
		}
		if gin.IsDebugging() {
			response["details"] = err.Error()
		}

		c.JSON(500, response)
	}
}
