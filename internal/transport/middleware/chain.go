package middleware

import "net/http"

// Middleware decorates an http.Handler with cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Chain composes middleware left to right: the first argument becomes the
// outermost wrapper. The server mounts RequestID first so even rate-limited
// or panicking requests carry an ID in the response.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		wrapped := h
		for i := len(mws) - 1; i >= 0; i-- {
			wrapped = mws[i](wrapped)
		}
		return wrapped
	}
}
