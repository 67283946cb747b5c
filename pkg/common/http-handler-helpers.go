package common

import (
	"errors"
	"log"
	"net/http"

	"github.com/bytedance/sonic"
)

// HttpError carries the status code a handler wants to respond with.
type HttpError struct {
	Status int
	Err    error
}

func (e *HttpError) Error() string {
	return e.Err.Error()
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(status int, err error) *HttpError {
	return &HttpError{Status: status, Err: err}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HandlerFunc func(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error

// JsonHandler answers preflight requests, resolves the session cookie and
// encodes handler responses with sonic. Errors are written as ErrorResponse
// with the status of the first HttpError in the chain, or 500.
func JsonHandler(trk SessionTracker, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Content-Type", "application/json")

		if err := fn(w, r, sessionId, sonic.ConfigDefault.NewEncoder(w)); err != nil {
			WriteError(w, err)
		}
	}
}

// WriteError must be called before anything else is written to w.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		status = httpErr.Status
	}
	if status >= http.StatusInternalServerError {
		log.Printf("Error handling request: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := sonic.ConfigDefault.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()}); encErr != nil {
		log.Printf("Failed to encode error response: %v", encErr)
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if origin := r.Header.Get("Origin"); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.WriteHeader(http.StatusAccepted)
}
