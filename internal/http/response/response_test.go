package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	domainErrs "github.com/yungbote/automate-backend/internal/pkg/errors"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRespondAPIErrorMapsSentinels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondAPIError(c, fmt.Errorf("car 4: %w", domainErrs.ErrNotFound), "car_lookup_failed")
	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Equal(t, "not_found", env.Error.Code)
	require.Contains(t, env.Error.Message, "car 4")
}

func TestRespondAPIErrorHidesInternalMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondAPIError(c, errors.New("dial tcp: connection refused"), "db_failed")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Equal(t, "db_failed", env.Error.Code)
	require.Equal(t, "internal server error", env.Error.Message)
}
