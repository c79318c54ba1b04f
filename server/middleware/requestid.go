package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kbukum/asrdrop/validation"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-Id"

// RequestID makes sure every request carries a UUID in X-Request-Id. An
// inbound id is kept when it is a valid UUID and replaced otherwise, so the
// value can be trusted in logs.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" || validation.New().OptionalUUID("request_id", id).HasErrors() {
				id = uuid.NewString()
			}
			r.Header.Set(HeaderRequestID, id)
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r)
		})
	}
}
