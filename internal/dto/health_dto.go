package dto

import "time"

const (
	CheckOK          = "ok"
	CheckError       = "error"
	CheckDisabled    = "disabled"
	CheckPlaceholder = "placeholder"
)

type CheckResult struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latencyMs,omitempty"`
}

type ConfigChecks struct {
	JwtSecret   string `json:"jwtSecret"`
	AiKey       string `json:"aiKey"`
	DatabaseUri string `json:"databaseUri"`
}

type HealthChecks struct {
	Database CheckResult  `json:"database"`
	Redis    CheckResult  `json:"redis"`
	Nats     CheckResult  `json:"nats"`
	Config   ConfigChecks `json:"config"`
}

type HealthResponse struct {
	Status    string       `json:"status"`
	Checks    HealthChecks `json:"checks"`
	Timestamp time.Time    `json:"timestamp"`
}
