package webutil

import (
	"errors"
	"log/slog"
	"net/http"
)

// AppHandler represents a handler function that returns an error.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// MakeHandler adapts an AppHandler to the standard http.HandlerFunc signature.
// It executes the AppHandler and handles any returned error by logging appropriately
// and sending a standardized JSON error response.
func MakeHandler(handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := handler(w, r)
		if err == nil {
			// The handler is assumed to have written its own successful response.
			return
		}

		var httpErr *HTTPError
		var valErr *ValidationError
		var payload any
		var statusCode int

		switch {
		case errors.As(err, &valErr):
			// Input failed declarative validation; surface every violated
			// constraint so the client can fix them all at once.
			statusCode = http.StatusBadRequest
			payload = map[string]any{
				"error":      "Validation failed",
				"violations": valErr.Violations,
			}
			slog.Warn("Request failed validation",
				"violations", valErr.Violations,
				"path", r.URL.Path,
				"method", r.Method,
			)

		case errors.As(err, &httpErr):
			// An HTTPError we explicitly created (e.g., ErrBadRequest, ErrNotFound)
			statusCode = httpErr.Code
			payload = map[string]string{"error": httpErr.Message}
			logLevel := slog.LevelWarn // Treat client errors as warnings server-side
			if statusCode >= 500 {
				logLevel = slog.LevelError
			}
			// Log the underlying cause if present and different from the public message
			cause := errors.Unwrap(httpErr)
			if cause != nil && cause.Error() != httpErr.Message {
				slog.Log(r.Context(), logLevel, "Client error response",
					"code", httpErr.Code,
					"msg", httpErr.Message,
					"cause", cause,
					"path", r.URL.Path,
					"method", r.Method,
				)
			} else {
				slog.Log(r.Context(), logLevel, "Client error response",
					"code", httpErr.Code,
					"msg", httpErr.Message,
					"path", r.URL.Path,
					"method", r.Method,
				)
			}

		default:
			// Any other error is treated as an internal server error
			statusCode = http.StatusInternalServerError
			payload = map[string]string{"error": "Internal Server Error"}
			slog.Error("Unhandled internal error", "path", r.URL.Path, "method", r.Method, "error", err)
		}

		RespondWithJSON(w, statusCode, payload)
	}
}
