package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"eduresource-api/internal/shared/response"
)

// ErrorHandler logs errors attached with c.Error and answers an opaque 500
// if the handler has not written a response yet.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, e := range c.Errors {
			log.Error().
				Str("request_id", c.GetString(response.RequestIDKey)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Err(e.Err).
				Msg("Request failed")
		}

		if !c.Writer.Written() {
			response.InternalServerError(c)
		}
	}
}
