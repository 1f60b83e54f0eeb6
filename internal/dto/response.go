package dto

// Envelope is the uniform response shape: {success, data?, message}.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

// OK builds a success envelope.
func OK(data any, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}
