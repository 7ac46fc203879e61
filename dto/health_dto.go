package dto

// HealthResponse is the liveness probe payload
type HealthResponse struct {
	OK        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}
