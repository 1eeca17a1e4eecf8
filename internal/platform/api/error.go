package api

import (
	"net/http"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Envelope is the body of every response.
type Envelope struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Success writes {"status":"success","data":data}. A nil data is omitted.
func Success(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Envelope{Status: StatusSuccess, Data: data})
}

// Fail writes a client error with a human readable message.
func Fail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Status: StatusFail, Message: message})
}

// Convenience helpers
func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Fail(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	Fail(w, http.StatusForbidden, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, message)
}

// Internal hides the cause; callers log it with the request id.
func Internal(w http.ResponseWriter, requestID string) {
	WriteJSON(w, http.StatusInternalServerError, Envelope{
		Status:    StatusError,
		Message:   "internal server error",
		RequestID: requestID,
	})
}
