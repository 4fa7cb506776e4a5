package common

// Response is the wire envelope for single-object endpoints:
// { success, message?, data? }.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// FieldErrors maps failing field names to human-readable messages. Validation
// failures are field-scoped: the caller keeps the rest of the form intact.
type FieldErrors map[string]string

// ValidationResponse is the envelope for 400 responses carrying field errors.
type ValidationResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  FieldErrors `json:"errors"`
}

func OK(data interface{}, message string) Response {
	return Response{Success: true, Message: message, Data: data}
}

func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

func Invalid(errs FieldErrors) ValidationResponse {
	return ValidationResponse{Success: false, Message: "validation failed", Errors: errs}
}
