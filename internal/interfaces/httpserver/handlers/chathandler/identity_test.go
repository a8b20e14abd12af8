package chathandler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithClient(t *testing.T, ip, userAgent string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req, err := http.NewRequest(http.MethodPost, "/v1/chat", nil)
	require.NoError(t, err)
	req.RemoteAddr = ip + ":1234"
	req.Header.Set("User-Agent", userAgent)
	c.Request = req
	return c
}

func TestIdentifyClientStable(t *testing.T) {
	a := IdentifyClient(contextWithClient(t, "10.0.0.1", "Mozilla/5.0"))
	b := IdentifyClient(contextWithClient(t, "10.0.0.1", "Mozilla/5.0"))

	assert.Equal(t, a.UserID, b.UserID, "same client must map to same id")
	assert.Equal(t, a.UserName, b.UserName)
}

func TestIdentifyClientDistinguishesClients(t *testing.T) {
	a := IdentifyClient(contextWithClient(t, "10.0.0.1", "Mozilla/5.0"))
	b := IdentifyClient(contextWithClient(t, "10.0.0.2", "Mozilla/5.0"))
	c := IdentifyClient(contextWithClient(t, "10.0.0.1", "curl/8.0"))

	assert.NotEqual(t, a.UserID, b.UserID)
	assert.NotEqual(t, a.UserID, c.UserID)
}

func TestIdentifyClientShape(t *testing.T) {
	longUA := strings.Repeat("x", 300)
	id := IdentifyClient(contextWithClient(t, "192.168.1.50", longUA))

	assert.True(t, strings.HasPrefix(id.UserID, "user_"))
	assert.LessOrEqual(t, len(id.UserID), len("user_")+12)
	assert.True(t, strings.HasPrefix(id.UserName, "User "))
	assert.Equal(t, strings.ToUpper(id.UserName), id.UserName)
}

func TestIdentifyClientMissingMetadata(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/v1/chat", nil)
	require.NoError(t, err)
	c.Request = req

	id := IdentifyClient(c)
	assert.NotEmpty(t, id.UserID)
}
