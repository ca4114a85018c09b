package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestValidationFailedBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(RequestIDKey, "req-1")

	ValidationFailed(c, map[string]string{"Email": "Email address already in use."})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var p Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "https://tools.ietf.org/html/rfc7231#section-6.5.1", p.Type)
	assert.Equal(t, ValidationTitle, p.Title)
	assert.Equal(t, 400, p.Status)
	assert.Equal(t, "req-1", p.TraceID)
	assert.Equal(t, "Email address already in use.", p.Errors["Email"])
}

func TestNotFoundHasEmptyBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NotFound(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestFieldErrors(t *testing.T) {
	err := validation.Errors{
		"userName": errors.New("cannot be blank"),
		"email":    nil,
		"author": validation.Errors{
			"name": errors.New("too long"),
		},
	}

	assert.Equal(t, map[string]string{
		"UserName":    "cannot be blank",
		"Author.Name": "too long",
	}, FieldErrors(err))

	assert.Nil(t, FieldErrors(errors.New("plain")))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "A: x | B: y", Summary(map[string]string{"B": "y", "A": "x"}))
}
