package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceState_String(t *testing.T) {
	tests := []struct {
		state    ServiceState
		expected string
	}{
		{StateUnknown, "Unknown"},
		{StateStopped, "Stopped"},
		{StateStarting, "Starting"},
		{StateRunning, "Running"},
		{StateStopping, "Stopping"},
		{StateRebuilding, "Rebuilding"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, string(test.state))
	}
}

func TestHealthStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		health   HealthStatus
		terminal bool
	}{
		{HealthPending, false},
		{HealthHealthy, true},
		{HealthUnhealthy, true},
		{HealthStatus("starting"), false},
	}

	for _, test := range tests {
		t.Run(string(test.health), func(t *testing.T) {
			assert.Equal(t, test.terminal, test.health.IsTerminal())
		})
	}
}
