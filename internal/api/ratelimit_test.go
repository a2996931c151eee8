package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestMultiLimiter_PerKey(t *testing.T) {
	m := newMultiLimiter(rate.Every(time.Hour), 2, time.Minute)

	assert.True(t, m.allow("a"))
	assert.True(t, m.allow("a"))
	assert.False(t, m.allow("a"))
	assert.True(t, m.allow("b"))
}

func TestMultiLimiter_ForgetsIdleKeys(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	m := newMultiLimiter(rate.Every(time.Hour), 1, time.Minute)
	m.now = func() time.Time { return now }

	assert.True(t, m.allow("a"))
	now = now.Add(2 * time.Minute)
	m.allow("b")

	m.mu.Lock()
	_, ok := m.entries["a"]
	m.mu.Unlock()
	assert.False(t, ok)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.1.2.3:5555"
	assert.Equal(t, "10.1.2.3", clientIP(r))

	r.RemoteAddr = "10.1.2.3"
	assert.Equal(t, "10.1.2.3", clientIP(r))
}

func TestLoginIsRateLimited(t *testing.T) {
	env := newTestEnv(t, Options{LoginRatePerMinute: 1, LoginBurst: 2})

	for i := 0; i < 2; i++ {
		resp, _ := do(t, env, http.MethodPost, "/api/login", `{"master_password":"whatever"}`, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := do(t, env, http.MethodPost, "/api/login", `{"master_password":"whatever"}`, "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, decode[errorResponse](t, body).Detail)

	// other routes are not throttled
	resp, _ = do(t, env, http.MethodGet, "/api/status", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func loginFrom(t *testing.T, env *testEnv, forwardedFor string) int {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, env.http.URL+"/api/login", strings.NewReader(`{"master_password":"whatever"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	req.Header.Set("X-Real-IP", forwardedFor)

	resp, err := env.http.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestLoginRateLimit_IgnoresForwardedHeadersByDefault(t *testing.T) {
	env := newTestEnv(t, Options{LoginRatePerMinute: 1, LoginBurst: 2})

	var codes []int
	for i := 0; i < 5; i++ {
		codes = append(codes, loginFrom(t, env, fmt.Sprintf("203.0.113.%d", i+1)))
	}

	assert.Equal(t, []int{
		http.StatusOK, http.StatusOK,
		http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusTooManyRequests,
	}, codes)
}

func TestLoginRateLimit_TrustedProxyKeysOnForwardedClient(t *testing.T) {
	env := newTestEnv(t, Options{LoginRatePerMinute: 1, LoginBurst: 1, TrustProxyHeaders: true})

	assert.Equal(t, http.StatusOK, loginFrom(t, env, "203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(t, env, "203.0.113.1"))
	assert.Equal(t, http.StatusOK, loginFrom(t, env, "203.0.113.2"))
}
