package middleware

import (
	"net/http"
	"strings"
)

// CORS allows browser clients from the configured origins. An empty origin
// list allows every origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed := "*"
			if len(allowedOrigins) > 0 {
				allowed = ""
				for _, candidate := range allowedOrigins {
					if strings.EqualFold(candidate, origin) {
						allowed = origin
						break
					}
				}
				if allowed == "" {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
