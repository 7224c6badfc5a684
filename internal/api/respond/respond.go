// Package respond writes the JSON response contract shared by every
// handler: payloads on success, {"message": ...} on failure. Errors are
// logged with the request-scoped logger; internal details never reach the
// client.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type errorBody struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Message writes a {"message": ...} body with the given status.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Message: message})
}

// Error writes a {"message": ...} body and logs err against the request.
// Server errors (5xx) log at error level, client errors (4xx) at warn.
// The message is what the client sees; err stays in the log.
func Error(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(message)
	}

	Message(w, status, message)
}
