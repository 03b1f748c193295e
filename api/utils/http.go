// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/vechain/nftstaking/reverts"
)

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

func (e *httpError) Unwrap() error {
	return e.cause
}

// HTTPError create an error with http status code.
func HTTPError(cause error, status int) error {
	return &httpError{
		cause:  cause,
		status: status,
	}
}

// BadRequest convenience method to create http bad request error.
func BadRequest(cause error) error {
	return HTTPError(cause, http.StatusBadRequest)
}

// Forbidden convenience method to create http forbidden error.
func Forbidden(cause error) error {
	return HTTPError(cause, http.StatusForbidden)
}

// NotFound convenience method to create http not found error.
func NotFound(cause error) error {
	return HTTPError(cause, http.StatusNotFound)
}

// ErrorResponse is the body written for a failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StatusOf maps a ledger revert kind to the http status it is reported with.
func StatusOf(kind reverts.Kind) int {
	switch kind {
	case reverts.Unauthorized:
		return http.StatusForbidden
	case reverts.RecordNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// HandlerFunc like http.HandlerFunc, but it returns an error.
// Reverts are responded with the status of their kind, httpError with its own status,
// otherwise http.StatusInternalServerError responded.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc convert HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}

		if kind := reverts.KindOf(err); kind != reverts.Unknown {
			writeError(w, StatusOf(kind), kind.String(), err)
			return
		}
		if he, ok := err.(*httpError); ok {
			if he.cause == nil {
				w.WriteHeader(he.status)
				return
			}
			writeError(w, he.status, http.StatusText(he.status), he.cause)
			return
		}
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), err)
	}
}

func writeError(w http.ResponseWriter, status int, kind string, cause error) {
	w.Header().Set("Content-Type", JSONContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: kind, Message: cause.Error()})
}

// content types
const (
	JSONContentType = "application/json; charset=utf-8"
)

// ParseJSON parse a JSON object using strict mode.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON response an object in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// M shortcut for type map[string]any.
type M map[string]any
