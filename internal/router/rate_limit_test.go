package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`{"username":" Alice "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("username")(c)
	if key != "alice|1.2.3.4" {
		t.Fatalf("key want alice|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), " Alice ") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`not-json`))
	c.Request.RemoteAddr = "5.6.7.8:1234"

	if key := KeyByIPAndJSONField("username")(c); key != "5.6.7.8" {
		t.Fatalf("key want 5.6.7.8 got %s", key)
	}
}

func TestRateLimitRuleDecide(t *testing.T) {
	rule := RateLimitRule{Prefix: "shanture:rate:login", WindowSeconds: 300, MaxRequests: 2, BlockSeconds: 900}

	if d := rule.decide(2, 280); d.limited {
		t.Fatalf("count at limit should pass: %+v", d)
	}
	if d := rule.decide(3, 900); !d.limited || d.retryAfter != 900 {
		t.Fatalf("count over limit should block for ttl: %+v", d)
	}
	if d := rule.decide(4, -1); d.retryAfter != 300 {
		t.Fatalf("missing ttl should fall back to window, got %d", d.retryAfter)
	}
	if got := rule.key("alice|1.2.3.4"); got != "shanture:rate:login:alice|1.2.3.4" {
		t.Fatalf("unexpected key %s", got)
	}
	if got := rule.message(15); got != "Too many requests, please retry in 15 seconds" {
		t.Fatalf("unexpected default message %q", got)
	}
	if (RateLimitRule{WindowSeconds: 60}).enabled() {
		t.Fatalf("rule without max requests should be disabled")
	}
}
