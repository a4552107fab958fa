package models

import "time"

// APIResponse is the generic envelope for non-passthrough endpoints.
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data, Timestamp: time.Now()}
}

// Fail wraps an error message in a failure envelope.
func Fail(msg string) APIResponse {
	return APIResponse{Success: false, Error: msg, Timestamp: time.Now()}
}
