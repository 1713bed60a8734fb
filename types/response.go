package types

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// StatusResponse is a minimal success acknowledgement.
type StatusResponse struct {
	Status string `json:"status"`
}
