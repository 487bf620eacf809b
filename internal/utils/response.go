package utils

// ErrorResponse is the body of every non-2xx response: an HTTP status
// code on the wire and a human-readable detail string in the body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// NewErrorResponse creates an error body with the given detail message.
func NewErrorResponse(detail string) ErrorResponse {
	return ErrorResponse{Detail: detail}
}
