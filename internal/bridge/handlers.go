package bridge

import (
	"context"
	"fmt"
	"strings"

	"braintree-mcp/internal/braintree"

	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers never return a Go error for upstream failures: a failed Braintree
// call becomes an error result inside the tool boundary, not a protocol
// fault. The only Go errors the MCP library sees are its own argument
// validation failures, and those are converted to error results too.

// handlePing handles the braintree_ping tool.
func (s *Server) handlePing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.client.Ping(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error pinging Braintree: %v", err)), nil
	}
	return mcp.NewToolResultText(result), nil
}

// handleExecuteGraphQL handles the braintree_execute_graphql tool. The query
// and variables are forwarded to Braintree exactly as supplied; validation is
// limited to basic type checking and an operation-prefix check.
func (s *Server) handleExecuteGraphQL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return mcp.NewToolResultError("query cannot be empty"), nil
	}
	if !strings.HasPrefix(trimmed, "query") && !strings.HasPrefix(trimmed, "mutation") && !strings.HasPrefix(trimmed, "{") {
		return mcp.NewToolResultError("invalid GraphQL operation: must start with 'query', 'mutation' or '{'"), nil
	}

	var variables map[string]interface{}
	if raw := request.GetArguments()["variables"]; raw != nil {
		varsMap, ok := raw.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("variables must be an object"), nil
		}
		variables = varsMap
	}

	body, err := s.client.Execute(ctx, braintree.Request{Query: query, Variables: variables})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Braintree request failed: %v", err)), nil
	}

	return mcp.NewToolResultText(string(body)), nil
}

// handleLegacyID handles the braintree_legacy_id tool.
func (s *Server) handleLegacyID(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	legacyID, err := request.RequireString("legacy_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	legacyIDType, err := request.RequireString("legacy_id_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, found, err := s.client.IDFromLegacyID(ctx, legacyID, legacyIDType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error retrieving GraphQL ID: %v", err)), nil
	}
	if !found {
		return mcp.NewToolResultText(fmt.Sprintf("No GraphQL ID found for legacy ID %q of type %q.", legacyID, legacyIDType)), nil
	}

	return mcp.NewToolResultText(id), nil
}
