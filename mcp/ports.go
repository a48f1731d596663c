package mcp

import (
	"errors"

	"esmcp/executor"
	"esmcp/heartbeat"
)

var ErrMissingExecutor = errors.New("mcp: executor is required")

// Ports aggregates the dependencies the MCP server is driven by. A single
// injection point keeps the server constructor flat.
type Ports struct {
	// Executor runs queries against the Everything index.
	Executor executor.Executor

	// Heartbeat provides component health; optional.
	Heartbeat *heartbeat.Heartbeat
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Executor == nil {
		return ErrMissingExecutor
	}
	return nil
}
