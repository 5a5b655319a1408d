package integration

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHealthCheck assumes a royalty-server is already running (for example
// via Docker Compose).
// Run with: go test -v ./tests/integration/...
func TestHealthCheck(t *testing.T) {
	baseURL := "http://localhost:8080"

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		t.Skip("Skipping integration test: server not running? " + err.Error())
		return
	}
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Code int `json:"code"`
		Data struct {
			Status  string `json:"status"`
			Service string `json:"service"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, 0, envelope.Code)
	assert.Equal(t, "UP", envelope.Data.Status)
	assert.Equal(t, "royalty-server", envelope.Data.Service)
}
