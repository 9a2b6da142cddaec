package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kutbudev/joplin-mcp/internal/launcher"
)

type EnsureRunningInput struct{}

// handleEnsureRunning pre-warms the connection: cheap liveness probe, then
// an auto-launch attempt when the desktop app is down. This is the only
// place the core launches anything or waits for readiness; the transport
// itself never retries.
func handleEnsureRunning(ctx context.Context, req *mcp.CallToolRequest, input EnsureRunningInput) (*mcp.CallToolResult, any, error) {
	if launcher.IsRunning() {
		// Process alive does not mean the Web Clipper service is enabled;
		// verify with a short readiness window.
		if launcher.WaitReady(ctx, apiClient.Ping, 2*launcher.LaunchWait) {
			return textResult("✅ Joplin is already running and the API is ready."), nil, nil
		}
	}

	if !autoLaunch {
		return textResult("❌ Joplin is not running and auto-launch is disabled. " +
			"Please start Joplin manually and enable the Web Clipper service."), nil, nil
	}

	if !launcher.Launch() {
		return textResult("❌ Failed to launch Joplin. Could not find a Joplin executable. " +
			"Please start Joplin manually."), nil, nil
	}

	if launcher.WaitReady(ctx, apiClient.Ping, launcher.ReadyTimeout) {
		return textResult("✅ Joplin launched successfully and the API is ready."), nil, nil
	}
	return textResult(fmt.Sprintf(
		"⚠️ Joplin was launched but the API did not become ready within %s. "+
			"Check that the Web Clipper service is enabled (Tools > Options > Web Clipper).",
		launcher.ReadyTimeout)), nil, nil
}
