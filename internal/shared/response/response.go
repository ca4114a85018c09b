package response

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// ValidationTitle is the title of every 400 validation problem.
const ValidationTitle = "One or more validation errors occurred."

var problemTypes = map[int]string{
	http.StatusBadRequest:          "https://tools.ietf.org/html/rfc7231#section-6.5.1",
	http.StatusUnauthorized:        "https://tools.ietf.org/html/rfc7235#section-3.1",
	http.StatusForbidden:           "https://tools.ietf.org/html/rfc7231#section-6.5.3",
	http.StatusNotFound:            "https://tools.ietf.org/html/rfc7231#section-6.5.4",
	http.StatusConflict:            "https://tools.ietf.org/html/rfc7231#section-6.5.8",
	http.StatusInternalServerError: "https://tools.ietf.org/html/rfc7231#section-6.6.1",
	http.StatusServiceUnavailable:  "https://tools.ietf.org/html/rfc7231#section-6.6.4",
}

// Problem is the error body shared by every non-2xx response that has one.
type Problem struct {
	Type    string            `json:"type"`
	Title   string            `json:"title"`
	Status  int               `json:"status"`
	TraceID string            `json:"traceId"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func NewProblem(c *gin.Context, status int, title string, errs map[string]string) Problem {
	return Problem{
		Type:    problemTypes[status],
		Title:   title,
		Status:  status,
		TraceID: c.GetString(RequestIDKey),
		Errors:  errs,
	}
}

// Success responses

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created answers 201 with the new resource and its location.
func Created(c *gin.Context, location string, data interface{}) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error responses

// NotFound answers 404 with an empty body.
func NotFound(c *gin.Context) {
	c.AbortWithStatus(http.StatusNotFound)
}

// BadRequest answers 400 with an empty body.
func BadRequest(c *gin.Context) {
	c.AbortWithStatus(http.StatusBadRequest)
}

// ValidationFailed answers 400 with field errors.
func ValidationFailed(c *gin.Context, errs map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, NewProblem(c, http.StatusBadRequest, ValidationTitle, errs))
}

func Unauthorized(c *gin.Context, title string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, NewProblem(c, http.StatusUnauthorized, title, nil))
}

func Forbidden(c *gin.Context, title string) {
	c.AbortWithStatusJSON(http.StatusForbidden, NewProblem(c, http.StatusForbidden, title, nil))
}

func Conflict(c *gin.Context, title string, errs map[string]string) {
	c.AbortWithStatusJSON(http.StatusConflict, NewProblem(c, http.StatusConflict, title, errs))
}

func InternalServerError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		NewProblem(c, http.StatusInternalServerError, "An unexpected error occurred.", nil))
}

func ServiceUnavailable(c *gin.Context, data interface{}) {
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, data)
}

// FieldErrors flattens ozzo validation errors into a field → message map
// keyed by the capitalised field name. Nested errors use dotted keys.
// It returns nil when err carries no field errors.
func FieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	flatten("", verrs, out)
	return out
}

func flatten(prefix string, verrs validation.Errors, out map[string]string) {
	for field, err := range verrs {
		if err == nil {
			continue
		}
		key := prefix + capitalize(field)

		var nested validation.Errors
		if errors.As(err, &nested) {
			flatten(key+".", nested, out)
			continue
		}
		out[key] = err.Error()
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Summary renders field errors as "Field: message | Field: message" for log lines.
func Summary(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+errs[k])
	}
	return strings.Join(parts, " | ")
}
