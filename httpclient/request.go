package httpclient

// Request is one outbound call.
type Request struct {
	Method string

	// Path is joined to BaseURL unless it is already an absolute http(s) URL.
	Path string

	// Headers override the client's default headers.
	Headers map[string]string
	Query   map[string]string

	// Body may be a *MultipartBody, an io.Reader, []byte, a string, or any
	// other value, which is sent as JSON.
	Body any
}

// Response is a fully read upstream answer.
type Response struct {
	StatusCode int

	// Headers keeps the first value of each response header.
	Headers map[string]string
	Body    []byte
}
