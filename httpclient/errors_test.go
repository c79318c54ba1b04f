package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrCodeRequest, "request"},
		{ErrCodeValidation, "validation"},
		{ErrCodeEncode, "encode"},
		{ErrCodeNotFound, "not_found"},
		{ErrCodeRateLimit, "rate_limit"},
		{ErrCodeClient, "client"},
		{ErrCodeServer, "server"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	e := &Error{StatusCode: 404, Code: ErrCodeNotFound, Message: "HTTP 404"}
	want := "httpclient: not_found (HTTP 404): HTTP 404"
	if got := e.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	e2 := &Error{Code: ErrCodeConnection, Message: "connection refused"}
	want2 := "httpclient: connection: connection refused"
	if got := e2.Error(); got != want2 {
		t.Errorf("got %q, want %q", got, want2)
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("dial failed")
	outer := NewConnectionError(inner)
	if !errors.Is(outer, inner) {
		t.Error("Unwrap did not expose the inner error")
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyTransportError(t *testing.T) {
	refused := &url.Error{Op: "Post", URL: "http://asr", Err: &net.OpError{
		Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED),
	}}
	dns := &url.Error{Op: "Post", URL: "http://nope.invalid", Err: &net.OpError{
		Op: "dial", Net: "tcp", Err: &net.DNSError{Err: "no such host", Name: "nope.invalid"},
	}}
	reset := &url.Error{Op: "Post", URL: "http://asr", Err: syscall.ECONNRESET}
	deadline := &url.Error{Op: "Post", URL: "http://asr", Err: context.DeadlineExceeded}
	netTimeout := &url.Error{Op: "Post", URL: "http://asr", Err: timeoutErr{}}
	scheme := &url.Error{Op: "Post", URL: "gopher://asr", Err: errors.New(`unsupported protocol scheme "gopher"`)}

	canceledCtx, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want ErrorCode
	}{
		{"refused", context.Background(), refused, ErrCodeConnection},
		{"dns", context.Background(), dns, ErrCodeConnection},
		{"reset", context.Background(), reset, ErrCodeConnection},
		{"deadline", context.Background(), deadline, ErrCodeTimeout},
		{"net timeout", context.Background(), netTimeout, ErrCodeTimeout},
		{"scheme", context.Background(), scheme, ErrCodeRequest},
		{"canceled", canceledCtx, &url.Error{Op: "Post", URL: "http://asr", Err: context.Canceled}, ErrCodeRequest},
		{"already classified", context.Background(), NewEncodeError(errors.New("x")), ErrCodeEncode},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyTransportError(tc.ctx, tc.err)
			if got.Code != tc.want {
				t.Errorf("code = %s, want %s (%v)", got.Code, tc.want, tc.err)
			}
		})
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		code    int
		wantNil bool
		errCode ErrorCode
		retry   bool
	}{
		{200, true, 0, false},
		{201, true, 0, false},
		{204, true, 0, false},
		{400, false, ErrCodeClient, false},
		{401, false, ErrCodeClient, false},
		{404, false, ErrCodeNotFound, false},
		{422, false, ErrCodeClient, false},
		{429, false, ErrCodeRateLimit, true},
		{500, false, ErrCodeServer, true},
		{503, false, ErrCodeServer, true},
		{302, false, ErrCodeServer, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("HTTP_%d", tt.code), func(t *testing.T) {
			err := ClassifyStatusCode(tt.code, []byte("body"))
			if tt.wantNil {
				if err != nil {
					t.Errorf("expected nil, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Code != tt.errCode {
				t.Errorf("code = %v, want %v", err.Code, tt.errCode)
			}
			if err.Retryable != tt.retry {
				t.Errorf("retryable = %v, want %v", err.Retryable, tt.retry)
			}
			if string(err.Body) != "body" {
				t.Errorf("body = %q", err.Body)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewTimeoutError(errors.New("slow")))
	if !IsTimeout(wrapped) {
		t.Error("predicates should see through wrapping")
	}
	if IsConnection(wrapped) || IsServerError(wrapped) || IsEncode(wrapped) {
		t.Error("unexpected predicate match")
	}
	if IsServerError(errors.New("plain")) {
		t.Error("foreign errors match no predicate")
	}
}

func TestClassifyBodyError(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want ErrorCode
	}{
		{"reset", context.Background(), &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}, ErrCodeRequest},
		{"unexpected eof", context.Background(), io.ErrUnexpectedEOF, ErrCodeRequest},
		{"deadline", context.Background(), context.DeadlineExceeded, ErrCodeTimeout},
		{"canceled", canceled, context.Canceled, ErrCodeRequest},
		{"typed passes through", context.Background(), NewEncodeError(errors.New("x")), ErrCodeEncode},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyBodyError(tc.ctx, fmt.Errorf("read response body: %w", tc.err))
			if got.Code != tc.want {
				t.Errorf("code = %s, want %s", got.Code, tc.want)
			}
		})
	}

	if got := ClassifyTransportError(context.Background(), &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}); got.Code != ErrCodeConnection {
		t.Errorf("reset before a response should stay a connection error, got %s", got.Code)
	}
}
