// Package httpclient provides a small HTTP client with TLS support,
// multipart uploads, and typed errors.
//
// Every Do call is a single attempt. Failures are returned as *Error and
// classified so callers can map them onto their own taxonomy:
//
//   - Timeout: the client timeout or the context deadline elapsed
//   - Connection: dial, DNS, refused or reset
//   - Request: anything else at the transport level, including cancellation
//   - NotFound, RateLimit, Client, Server: non-2xx answers (the Response is
//     returned too)
//
// # Multipart Upload
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/api/v1/asr",
//	    Body: &httpclient.MultipartBody{
//	        Fields: map[string]string{"lang": "auto"},
//	        Files: []httpclient.FileField{
//	            {FieldName: "files", FileName: "a.wav", ContentType: "audio/wav", Reader: f},
//	        },
//	    },
//	})
package httpclient
