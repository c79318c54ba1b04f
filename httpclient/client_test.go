package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_Do_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/asr" {
			t.Errorf("expected /api/v1/asr, got %s", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != defaultUserAgent {
			t.Errorf("expected default user agent, got %q", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/v1/asr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("expected flattened content type header, got %v", resp.Headers)
	}
	if !strings.Contains(string(resp.Body), "ok") {
		t.Errorf("unexpected body %s", resp.Body)
	}
}

func TestClient_Do_POST_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(201)
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/echo",
		Body:   map[string]string{"lang": "en"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}

func TestClient_Do_HeadersAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Default"); got != "d" {
			t.Errorf("expected X-Default=d, got %q", got)
		}
		if got := r.Header.Get("X-Override"); got != "request" {
			t.Errorf("request header should override default, got %q", got)
		}
		if got := r.URL.Query().Get("lang"); got != "yue" {
			t.Errorf("expected lang=yue, got %q", got)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, _ := New(Config{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Default": "d", "X-Override": "client"},
	})
	_, err := c.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "/",
		Headers: map[string]string{"X-Override": "request"},
		Query:   map[string]string{"lang": "yue"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_StatusClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		code      ErrorCode
		retryable bool
	}{
		{"bad request", 400, ErrCodeClient, false},
		{"not found", 404, ErrCodeNotFound, false},
		{"rate limit", 429, ErrCodeRateLimit, true},
		{"server error", 500, ErrCodeServer, true},
		{"bad gateway", 502, ErrCodeServer, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte("boom"))
			}))
			defer srv.Close()

			c, _ := New(Config{BaseURL: srv.URL})
			resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
			if err == nil {
				t.Fatal("expected error")
			}
			if resp == nil || resp.StatusCode != tc.status || string(resp.Body) != "boom" {
				t.Fatalf("expected the response to be returned alongside the error, got %+v", resp)
			}
			hcErr, ok := err.(*Error)
			if !ok {
				t.Fatalf("expected *Error, got %T", err)
			}
			if hcErr.Code != tc.code {
				t.Errorf("code = %s, want %s", hcErr.Code, tc.code)
			}
			if hcErr.Retryable != tc.retryable {
				t.Errorf("retryable = %v, want %v", hcErr.Retryable, tc.retryable)
			}
			if hcErr.StatusCode != tc.status {
				t.Errorf("error status = %d", hcErr.StatusCode)
			}
			if IsServerError(err) != (tc.code == ErrCodeServer) {
				t.Errorf("IsServerError = %v for %d", IsServerError(err), tc.status)
			}
		})
	}
}

func TestClient_Do_ClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if resp != nil {
		t.Errorf("expected nil response on timeout, got %+v", resp)
	}
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestClient_Do_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c, _ := New(Config{BaseURL: srv.URL})
	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/"})
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error for expired context, got %v", err)
	}
}

func TestClient_Do_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, _ := New(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/"})
	hcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error for canceled context, got %v", err)
	}
	if hcErr.Code != ErrCodeRequest {
		t.Errorf("canceled context should be a request error, got %s", hcErr.Code)
	}
}

func TestClient_Do_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, _ := New(Config{})
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: url + "/api/v1/asr"})
	if !IsConnection(err) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if hcErr := err.(*Error); !hcErr.Retryable {
		t.Error("connection errors should be retryable")
	}
}

func TestClient_Do_UnsupportedScheme(t *testing.T) {
	c, _ := New(Config{})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "gopher://asr.local/api"})
	hcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if hcErr.Code != ErrCodeRequest {
		t.Errorf("expected request error, got %s", hcErr.Code)
	}
	if !strings.Contains(hcErr.Message, "unsupported protocol scheme") {
		t.Errorf("expected the underlying message, got %q", hcErr.Message)
	}
}

func TestClient_Do_InvalidURL(t *testing.T) {
	c, _ := New(Config{})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "http://[::1"})
	hcErr, ok := err.(*Error)
	if !ok || hcErr.Code != ErrCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestClient_Do_FullURL_IgnoresBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/direct" {
			t.Errorf("expected /direct, got %s", r.URL.Path)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: "http://should-not-be-used"})
	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: srv.URL + "/direct"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_ReaderAndStringBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write([]byte(r.Header.Get("Content-Type") + "|" + string(body)))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})

	resp, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/", Body: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != "text/plain|hello" {
		t.Errorf("string body echo = %q", resp.Body)
	}

	resp, err = c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/", Body: []byte("raw")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != "|raw" {
		t.Errorf("byte body echo = %q", resp.Body)
	}
}

func TestClient_CarriesTimeout(t *testing.T) {
	c, _ := New(Config{Timeout: 300 * time.Second})
	if c.httpClient.Timeout != 300*time.Second {
		t.Errorf("timeout = %v", c.httpClient.Timeout)
	}
	c.CloseIdleConnections()
}

func TestClient_Do_ResetMidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, buf, err := w.(http.Hijacker).Hijack()
		if err != nil {
			t.Errorf("hijack: %v", err)
			return
		}
		_, _ = buf.WriteString("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nContent-Length: 64\r\n\r\n{\"result\":")
		_ = buf.Flush()
		time.Sleep(50 * time.Millisecond)
		if tcp, ok := conn.(*net.TCPConn); ok {
			_ = tcp.SetLinger(0)
		}
		_ = conn.Close()
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/"})
	if resp != nil {
		t.Errorf("expected nil response, got %+v", resp)
	}
	hcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if hcErr.Code != ErrCodeRequest {
		t.Errorf("a broken body should be a request error, got %s (%v)", hcErr.Code, err)
	}
	if !strings.Contains(hcErr.Message, "read response body") {
		t.Errorf("message = %q", hcErr.Message)
	}
}
