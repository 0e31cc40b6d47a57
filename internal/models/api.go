package models

// AnalyzeRequest is the inbound body for the analyze and export endpoints.
type AnalyzeRequest struct {
	URL string `json:"url" binding:"required"`
}

// AnalyzeResponse is the success envelope for the analyze endpoint.
type AnalyzeResponse struct {
	Success bool            `json:"success"`
	Data    []VelocityPoint `json:"data"`
}

// ErrorResponse is the failure envelope shared by all endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// CounterResponse carries the current value of a named counter.
type CounterResponse struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
	Value   int64  `json:"value"`
}
