package transcription

// Middleware wraps a Provider with cross-cutting behavior. The returned
// provider delegates Name and IsAvailable to the one it wraps.
type Middleware func(Provider) Provider

// Chain composes middlewares. The first one is outermost.
//
// Chain(a, b, c)(p) is equivalent to a(b(c(p))).
func Chain(middlewares ...Middleware) Middleware {
	return func(inner Provider) Provider {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// outcome is the code recorded for a result: "ok" or the error code.
func outcome(res Result) string {
	if res.Error != nil {
		return string(res.Error.Code)
	}
	return "ok"
}
