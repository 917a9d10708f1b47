package model

type ErrorResponse struct {
	Error string `json:"error"`
	Data  any    `json:"data,omitempty"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
