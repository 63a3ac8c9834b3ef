package dto

// ErrorResponse is the uniform failure body: {"success": false, "error": "..."}.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorResponse creates a failure body with the given message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}

// MessageResponse is the minimal success body.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewMessageResponse creates a success body with the given message.
func NewMessageResponse(message string) *MessageResponse {
	return &MessageResponse{Success: true, Message: message}
}
