package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tourboard/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respondTo(t *testing.T, err error) (int, StandardApiResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondError(c, err)

	var body StandardApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusForbidden},
		{"invalid transition", apperrors.ErrInvalidTransition, http.StatusConflict},
		{"hold limit", apperrors.ErrHoldLimitExceeded, http.StatusConflict},
		{"date unavailable", apperrors.ErrDateUnavailable, http.StatusUnprocessableEntity},
		{"invalid window", fmt.Errorf("%w: bad range", apperrors.ErrInvalidWindow), http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := respondTo(t, tc.err)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tc.err.Error(), body.Message)
		})
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	t.Run("plain internal error", func(t *testing.T) {
		code, body := respondTo(t, errors.New(`pq: connection refused on "venue_bids"`))
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "internal server error", body.Message)
		assert.NotContains(t, body.Message, "venue_bids")
	})

	t.Run("persistence error keeps retry details", func(t *testing.T) {
		pe := apperrors.NewPersistenceError("bids.Accept",
			errors.New("pq: deadlock detected"),
			apperrors.StepAcceptBid, apperrors.StepCancelSiblings)

		code, body := respondTo(t, pe)
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "internal server error", body.Message)

		details, ok := body.Errors.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, true, details["retryable"])
		steps, ok := details["completed_steps"].([]interface{})
		require.True(t, ok)
		assert.Len(t, steps, 2)
	})
}
