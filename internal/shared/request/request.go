// Package request holds the binding and logging steps shared by every handler.
package request

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"eduresource-api/internal/shared/response"
)

// Validatable is implemented by every request DTO.
type Validatable interface {
	Validate() error
}

// BindAndValidate decodes the JSON body into req and validates it. On
// failure it writes the 400 problem response and returns false.
func BindAndValidate(c *gin.Context, req Validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		errs := map[string]string{"Body": err.Error()}
		LogFail(c, response.Summary(errs))
		response.ValidationFailed(c, errs)
		return false
	}

	if err := req.Validate(); err != nil {
		errs := response.FieldErrors(err)
		if errs == nil {
			errs = map[string]string{"Body": err.Error()}
		}
		LogFail(c, response.Summary(errs))
		response.ValidationFailed(c, errs)
		return false
	}

	return true
}

// PathID parses the named path parameter as a positive integer id. On
// failure it writes the 400 problem response and returns false.
func PathID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		errs := map[string]string{name: fmt.Sprintf("The value '%s' is not valid.", raw)}
		LogFail(c, response.Summary(errs))
		response.ValidationFailed(c, errs)
		return 0, false
	}
	return id, true
}

// LogSuccess writes the "<METHOD> <path> - Success - <detail>" action line.
func LogSuccess(c *gin.Context, detail string) {
	logAction(c, "Success", detail)
}

// LogFail writes the "<METHOD> <path> - Fail - <detail>" action line.
func LogFail(c *gin.Context, detail string) {
	logAction(c, "Fail", detail)
}

func logAction(c *gin.Context, outcome, detail string) {
	msg := c.Request.Method + " " + c.Request.URL.Path + " - " + outcome
	if detail != "" {
		msg += " - " + detail
	}

	log.Info().
		Str("request_id", c.GetString(response.RequestIDKey)).
		Str("outcome", outcome).
		Msg(msg)
}
