package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter(t *testing.T) {
	t.Run("IdleBuckets_ShouldBeSweptOnLaterRequest", func(t *testing.T) {
		// Arrange
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		rl := NewRateLimiter(1, 2)
		rl.now = func() time.Time { return now }
		rl.lastSweep = now

		require.True(t, rl.Allow("10.0.0.1"))
		require.True(t, rl.Allow("10.0.0.2"))
		require.Equal(t, 2, rl.size())

		// Act
		now = now.Add(sweepInterval)
		require.True(t, rl.Allow("10.0.0.3"))

		// Assert
		assert.Equal(t, 1, rl.size())
	})

	t.Run("BeforeInterval_ShouldKeepBuckets", func(t *testing.T) {
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		rl := NewRateLimiter(1, 2)
		rl.now = func() time.Time { return now }
		rl.lastSweep = now

		rl.Allow("10.0.0.1")
		now = now.Add(sweepInterval - time.Second)
		rl.Allow("10.0.0.2")

		assert.Equal(t, 2, rl.size())
	})

	t.Run("DrainedBucket_ShouldSurviveSweep", func(t *testing.T) {
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		rl := NewRateLimiter(0.001, 2)
		rl.now = func() time.Time { return now }
		rl.lastSweep = now

		rl.Allow("10.0.0.1")
		rl.Allow("10.0.0.1")
		now = now.Add(sweepInterval)
		rl.Allow("10.0.0.2")

		assert.Equal(t, 2, rl.size())
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("OverBurst_ShouldRespondTooManyRequests", func(t *testing.T) {
		// Arrange
		router := gin.New()
		router.Use(RateLimitMiddleware(0.001, 2))
		router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Accept", "application/json")
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)
			codes = append(codes, w.Code)

			if i == 2 {
				assert.Contains(t, w.Body.String(), "Too many requests")
			}
		}

		// Assert
		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	serve := func(header string) (string, string) {
		router := gin.New()
		router.Use(RequestIDMiddleware())
		router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(RequestIDHeader, header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Body.String(), w.Header().Get(RequestIDHeader)
	}

	t.Run("PlainHeader_ShouldBeKept", func(t *testing.T) {
		body, header := serve("abc-123_x.y")

		assert.Equal(t, "abc-123_x.y", body)
		assert.Equal(t, body, header)
	})

	t.Run("MissingHeader_ShouldGenerateID", func(t *testing.T) {
		body, header := serve("")

		assert.Len(t, body, 36)
		assert.Equal(t, body, header)
	})

	t.Run("UnsafeHeader_ShouldBeReplaced", func(t *testing.T) {
		for _, bad := range []string{"<script>", "a b", strings.Repeat("a", maxRequestIDLength+1)} {
			body, _ := serve(bad)

			assert.NotEqual(t, bad, body)
			assert.Len(t, body, 36)
		}
	})
}
