package handler

// ErrorBody is the {type, message} pair every client-facing failure carries.
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ErrorResponse is the canonical error envelope for all API errors.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
