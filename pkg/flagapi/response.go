package flagapi

import (
	"encoding/json"
	"net/http"
)

// Response is the JSON envelope of every flagapi reply.
type Response struct {
	Data  any          `json:"data,omitempty"`
	Meta  *Meta        `json:"meta,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// Meta carries non-fatal notes about a successful reply.
type Meta struct {
	Warning string `json:"warning,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Status is the on/off reading of a flag.
type Status struct {
	Key string `json:"key"`
	On  bool   `json:"on"`
	Off bool   `json:"off"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Response{Error: &ErrorDetail{Code: code, Message: message}})
}
