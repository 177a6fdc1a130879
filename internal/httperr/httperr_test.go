package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(ErrNotFound("sale_not_found")))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("wrapped: %w", ErrConflict("time_conflict"))))
	assert.Equal(t, KindPersistence, KindOf(errors.New("driver exploded")))
	assert.True(t, IsBusiness(fmt.Errorf("x: %w", ErrValidation("invalid_status")), "invalid_status"))
	assert.False(t, IsBusiness(errors.New("invalid_status"), "invalid_status"))
}

func TestFromStore(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		err := FromStore(gorm.ErrRecordNotFound, "invoice_not_found")
		assert.True(t, IsBusiness(err, "invoice_not_found"))
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("unique violation", func(t *testing.T) {
		err := FromStore(&pgconn.PgError{Code: "23505"}, "x")
		assert.Equal(t, KindConflict, KindOf(err))
	})

	t.Run("exclusion violation", func(t *testing.T) {
		assert.True(t, IsExclusionConflict(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})))
	})

	t.Run("business errors pass through", func(t *testing.T) {
		in := ErrValidation("invoice_already_paid")
		assert.Equal(t, in, FromStore(in, "x"))
	})

	t.Run("anything else is persistence", func(t *testing.T) {
		err := FromStore(errors.New("connection reset"), "x")
		assert.Equal(t, KindPersistence, KindOf(err))
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, FromStore(nil, "x"))
	})
}

func TestFromErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrValidation("invalid_rating"), http.StatusBadRequest, "invalid_rating"},
		{ErrNotFound("barber_not_found"), http.StatusNotFound, "barber_not_found"},
		{ErrConflict("time_conflict"), http.StatusConflict, "time_conflict"},
		{ErrAuth("invalid_token"), http.StatusUnauthorized, "invalid_token"},
		{ErrForbidden("forbidden"), http.StatusForbidden, "forbidden"},
		{ErrStorage("upload_failed", errors.New("s3 down")), http.StatusInternalServerError, "upload_failed"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		FromError(c, tc.err)

		assert.Equal(t, tc.status, w.Code)
		var body HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.code, body.Code)
	}
}
