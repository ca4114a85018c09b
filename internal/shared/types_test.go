package shared

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateAcceptsSeveralLayouts(t *testing.T) {
	want := time.Date(2021, 10, 5, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{`"2021-10-05"`, `"2021-10-05T00:00:00Z"`, `"2021-10-05T00:00:00"`} {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(in), &d), in)
		assert.True(t, want.Equal(d.Time), in)
	}
}

func TestDateRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20211005`), &d))
}

func TestDateMarshal(t *testing.T) {
	b, err := json.Marshal(NewDate(time.Date(2012, 11, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2012-11-01T00:00:00Z"`, string(b))
}

func TestDateRequired(t *testing.T) {
	assert.Error(t, DateRequired.Validate(Date{}))
	assert.NoError(t, DateRequired.Validate(NewDate(time.Now())))
}
