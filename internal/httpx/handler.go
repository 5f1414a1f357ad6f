// Package httpx is a convenience wrapper around net/http that allows us to
// return errors from our handlers.
// see https://blog.questionable.services/article/http-handler-error-handling-revisited/ for more details.
package httpx

import (
	"errors"
	"net/http"

	"github.com/go-json-experiment/json"
	"golang.org/x/exp/slog"
)

// Error is a convenience function for returning an error with an associated HTTP status code.
func Error(code int, err error) error {
	return &StatusError{code, err}
}

// StatusError represents an error with an associated HTTP status code.
type StatusError struct {
	Code int
	Err  error
}

// Allows StatusError to satisfy the error interface.
func (se *StatusError) Error() string {
	return se.Err.Error()
}

// Unwrap returns the underlying error.
func (se *StatusError) Unwrap() error {
	return se.Err
}

// Returns our HTTP status code.
func (se *StatusError) Status() int {
	return se.Code
}

// HandlerFunc adapts a function that returns an error to an http.HandlerFunc.
// If E has a Log() *slog.Logger method, errors are logged there.
func HandlerFunc[E any](envFn func(r *http.Request) *E, fn func(*E, http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		env := envFn(r)
		if err := fn(env, w, r); err != nil {
			WriteError(loggerFor(env), w, r, err)
		}
	}
}

// ErrorHandler returns a handler that always fails with code and err, for
// use as a router's NotFound or MethodNotAllowed handler.
func ErrorHandler(log *slog.Logger, code int, err error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(log, w, r, Error(code, err))
	}
}

// WriteError writes err to w as a JSON error body. A StatusError supplies
// the status code and message, anything else is a 500 whose details are
// only logged.
func WriteError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if se := new(StatusError); errors.As(err, &se) {
		level := slog.LevelDebug
		if se.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.Log(r.Context(), level, "HTTP", "method", r.Method, "path", r.URL.Path, "status", se.Status(), "error", err)
		w.WriteHeader(se.Status())
		json.MarshalFull(w, map[string]any{
			"error": se.Error(),
		})
		return
	}
	log.Error("HTTP", "method", r.Method, "path", r.URL.Path, "status", http.StatusInternalServerError, "error", err)
	w.WriteHeader(http.StatusInternalServerError)
	json.MarshalFull(w, map[string]any{
		"error": http.StatusText(http.StatusInternalServerError),
	})
}

func loggerFor(env any) *slog.Logger {
	if l, ok := env.(interface{ Log() *slog.Logger }); ok {
		if log := l.Log(); log != nil {
			return log
		}
	}
	return slog.Default()
}
