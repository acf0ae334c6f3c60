package server

import (
	"errors"
	"net/http"
)

var (
	ErrMissingRenderer = errors.New("server: missing page renderer")
	ErrWasmDisabled    = errors.New("server: wasm directory not configured")
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// writeError maps err onto a plain text response. Details of 5xx errors stay
// in the log.
func writeError(w http.ResponseWriter, err error) int {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
	return code
}
