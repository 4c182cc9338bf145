package models

// ErrorResponse is a generic error response structure for the API.
type ErrorResponse struct {
	Message string `json:"message"`
}
