package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateRunID generates a run ID with a timestamp prefix and a short
// random suffix, e.g. "run-20250114-093042-1a2b3c4d".
func GenerateRunID() string {
	timestamp := time.Now().Format("20060102-150405")
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("run-%s-%s", timestamp, suffix)
}

// GenerateSimID generates an identifier for a batch of replicate runs
func GenerateSimID() string {
	return fmt.Sprintf("sim-%s", uuid.NewString())
}
