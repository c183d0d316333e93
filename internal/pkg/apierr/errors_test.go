package apierr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImmutable(t *testing.T) {
	e := New(400, "INVALID_REQUEST", "invalid request: some or all request parameters are invalid")
	changedE := e.Msg("%s", "changed")
	assert.NotEqual(t, "changed", e.Message, "expected the original error to keep its message")
	assert.Equal(t, "changed", changedE.Message)
	assert.Equal(t, e.StatusCode, changedE.StatusCode)
}

func TestWithExtrasDoesNotLeak(t *testing.T) {
	e := NewInvalidViolations([]string{"email is required"})
	assert.NotNil(t, e.Extras)
	assert.Nil(t, ErrInvalidReq.Extras, "expected the shared sentinel to stay untouched")
	assert.Equal(t, 422, e.StatusCode)

	withExtras := ErrInternalError.WithExtras(Extras{"name": "Chess Club"})
	assert.Nil(t, ErrInternalError.Extras)
	assert.Equal(t, "Chess Club", (*withExtras.Extras)["name"])
	assert.Equal(t, []string{"email is required"}, (*e.Extras)["violations"])
}

func TestErrorString(t *testing.T) {
	e := New(404, "ACTIVITY_NOT_FOUND", "Activity not found")
	assert.Equal(t, "ACTIVITY_NOT_FOUND: Activity not found", e.Error())
}
