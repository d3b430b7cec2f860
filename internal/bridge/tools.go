package bridge

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers the Braintree tools with the MCP server. Every
// transport serves this same registration.
func (s *Server) registerTools() {
	pingTool := mcp.NewTool("braintree_ping",
		mcp.WithDescription("Ping the Braintree GraphQL API to check connectivity and authentication. Returns 'pong' on success."),
	)
	s.server.AddTool(pingTool, s.handlePing)

	executeTool := mcp.NewTool("braintree_execute_graphql",
		mcp.WithDescription("Execute an arbitrary GraphQL query or mutation against the Braintree API. "+
			"The query and variables are forwarded verbatim and the complete upstream JSON response is returned, "+
			"including any errors Braintree reports. Schema discovery via GraphQL introspection queries works like any other query."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The complete GraphQL query or mutation to execute. Must start with 'query', 'mutation' or '{'."),
		),
		mcp.WithObject("variables",
			mcp.Description("Optional variables for the operation, keyed by the names used in the query."),
		),
	)
	s.server.AddTool(executeTool, s.handleExecuteGraphQL)

	legacyIDTool := mcp.NewTool("braintree_legacy_id",
		mcp.WithDescription("Translate a legacy Braintree identifier (e.g. a transaction or customer ID) into its GraphQL ID."),
		mcp.WithString("legacy_id",
			mcp.Required(),
			mcp.Description("The legacy identifier to translate."),
		),
		mcp.WithString("legacy_id_type",
			mcp.Required(),
			mcp.Description("The type of the legacy ID. Common values: TRANSACTION, CUSTOMER, PAYMENT_METHOD, SUBSCRIPTION, DISPUTE."),
		),
	)
	s.server.AddTool(legacyIDTool, s.handleLegacyID)
}
