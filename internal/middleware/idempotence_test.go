package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdempotenceRouter(t *testing.T) (*gin.Engine, *atomic.Int32) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	var handled atomic.Int32
	r := gin.New()
	r.Use(Idempotence(rdb))
	r.POST("/upload_html/", func(c *gin.Context) {
		handled.Add(1)
		c.JSON(http.StatusOK, gin.H{"token": uuid.New().String()})
	})
	r.POST("/failing", func(c *gin.Context) {
		handled.Add(1)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": 0})
	})
	return r, &handled
}

func doPost(r *gin.Engine, path, idempotenceKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"html":"<p>same</p>"}`))
	req.Header.Set("Content-Type", "application/json")
	if idempotenceKey != "" {
		req.Header.Set("x-idempotence", idempotenceKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdenticalRequestsWithoutKeyBothSucceed(t *testing.T) {
	r, handled := newIdempotenceRouter(t)

	first := doPost(r, "/upload_html/", "")
	second := doPost(r, "/upload_html/", "")

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, int32(2), handled.Load())
	assert.NotEqual(t, first.Body.String(), second.Body.String(), "each upload should mint its own token")
}

func TestDuplicateRequestWithKeyRejected(t *testing.T) {
	r, handled := newIdempotenceRouter(t)

	first := doPost(r, "/upload_html/", "client-key-1")
	second := doPost(r, "/upload_html/", "client-key-1")

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, int32(1), handled.Load())
}

func TestDistinctKeysBothSucceed(t *testing.T) {
	r, handled := newIdempotenceRouter(t)

	first := doPost(r, "/upload_html/", "client-key-1")
	second := doPost(r, "/upload_html/", "client-key-2")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, int32(2), handled.Load())
}

func TestFailedRequestDoesNotBlockRetry(t *testing.T) {
	r, handled := newIdempotenceRouter(t)

	first := doPost(r, "/failing", "retry-key")
	second := doPost(r, "/failing", "retry-key")

	assert.Equal(t, http.StatusInternalServerError, first.Code)
	assert.Equal(t, http.StatusInternalServerError, second.Code)
	assert.Equal(t, int32(2), handled.Load())
}

func TestGetRequestsBypassGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	r := gin.New()
	r.Use(Idempotence(rdb))
	r.GET("/get_summary/:token", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"summary": "s"})
	})

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/get_summary/abc", nil)
		req.Header.Set("x-idempotence", "same-key")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
