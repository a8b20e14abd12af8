package adminhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kawan-server/internal/domain/usage"
)

type stubStore struct {
	initErr error
}

func (s *stubStore) Append(_ context.Context, _ *usage.Event) error { return nil }

func (s *stubStore) ReadAll(_ context.Context) ([]usage.Event, error) { return nil, nil }

func (s *stubStore) Initialize(_ context.Context) error { return s.initErr }

func (s *stubStore) Backend() string { return "stub" }

func newTestRouter(store usage.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := usage.NewService(store, zerolog.Nop())
	handler := NewHandler(svc, zerolog.Nop())

	router := gin.New()
	router.GET("/v1/admin/init-db", handler.InitDB)
	return router
}

func TestInitDBSuccess(t *testing.T) {
	router := newTestRouter(&stubStore{})

	req, err := http.NewRequest(http.MethodGet, "/v1/admin/init-db", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body["message"], "stub")
}

func TestInitDBSurfacesStorageError(t *testing.T) {
	router := newTestRouter(&stubStore{initErr: errors.New("connection refused")})

	req, err := http.NewRequest(http.MethodGet, "/v1/admin/init-db", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "connection refused")
}
