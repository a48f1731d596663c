package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"esmcp/model"
)

const uriScheme = "everything://"

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Current status of the Everything engine and server components",
		MIMEType:    "application/json",
	}, s.handleStatusResource)
}

type statusPayload struct {
	Engine     *model.HealthStatus `json:"engine"`
	Components *model.SystemHealth `json:"components,omitempty"`
}

func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	payload := statusPayload{
		Engine: s.ports.Executor.HealthCheck(ctx),
	}
	if s.ports.Heartbeat != nil {
		payload.Components = s.ports.Heartbeat.GetHealth()
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
