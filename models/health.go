package models

const (
	HealthStatusOK          = "ok"
	HealthStatusMissingKeys = "missing_keys"
	HealthStatusError       = "error"
)

type HealthResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}
