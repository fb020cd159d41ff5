package middleware

import "net/http"

// MaxRequestSize caps the request body; oversized bodies fail at read time
// inside the handler with http.MaxBytesError.
func MaxRequestSize(maxBytes int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))
			}
			next.ServeHTTP(w, r)
		})
	}
}
