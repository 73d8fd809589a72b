// Package response defines the JSON envelope shared by every endpoint:
// successes wrap their payload, errors carry a human-readable message.
package response

// Envelope is the wire shape of every response body.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK wraps a payload in a success envelope.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// Error builds an error envelope with the given message.
func Error(message string) Envelope {
	return Envelope{Success: false, Message: message}
}
