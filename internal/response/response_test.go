package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessOmitsError(t *testing.T) {
	raw, err := json.Marshal(Success(map[string]int{"n": 1}, map[string]any{"count": 1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"n":1},"meta":{"count":1}}`, string(raw))
}

func TestErrorEnvelopes(t *testing.T) {
	cases := []struct {
		resp APIResponse
		code int
	}{
		{BadRequest("bad"), 400},
		{Unauthorized("who"), 401},
		{NotFound("gone"), 404},
		{Conflict("dup"), 409},
		{TooManyRequests("slow"), 429},
		{InternalError("boom"), 500},
		{NewAppError(418, "teapot"), 418},
	}
	for _, tc := range cases {
		require.NotNil(t, tc.resp.Error)
		assert.Equal(t, tc.code, tc.resp.Error.Code)
		assert.Nil(t, tc.resp.Data)
	}
}
