package resp

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Exception represents the response structure.
type Exception struct {
	Status  int    `json:"status,omitempty"`  // HTTP status
	Message string `json:"message,omitempty"` // Message
	Errors  any    `json:"errors,omitempty"`  // Validation errors
	Data    any    `json:"data,omitempty"`    // Response data
}

// Success handles success responses.
func Success(w http.ResponseWriter, data ...any) {
	var message string
	var responseData any

	if len(data) > 0 {
		responseData = data[0]
		if strData, ok := responseData.(string); ok {
			message = strData
			responseData = nil
		}
	}

	if responseData == nil {
		if message == "" {
			message = "ok"
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": message})
		return
	}

	writeJSON(w, http.StatusOK, responseData)
}

// Fail handles failure responses.
func Fail(w http.ResponseWriter, r *Exception) {
	if r == nil {
		r = InternalServer("internal server error")
	}

	status := r.Status
	if status == 0 {
		status = http.StatusBadRequest
	}

	writeJSON(w, status, r)
}

// BadRequest creates a 400 exception.
func BadRequest(format string, args ...any) *Exception {
	return &Exception{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

// NotFound creates a 404 exception.
func NotFound(format string, args ...any) *Exception {
	return &Exception{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// InternalServer creates a 500 exception.
func InternalServer(format string, args ...any) *Exception {
	return &Exception{
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf(format, args...),
	}
}

// writeJSON writes the payload with a JSON content type.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
