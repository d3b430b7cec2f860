// Package bridge exposes the Braintree GraphQL API as MCP tools.
//
// One MCP server carries the complete tool registration; the transports
// (stdio, SSE, streamable HTTP) are thin adapters over it. Because every
// transport dispatches to the same handler functions, identical inputs and
// identical upstream responses produce identical tool outputs regardless of
// transport.
//
// # Tools
//
//   - braintree_ping: minimal authenticated query, returns the fixed "pong"
//     token on success
//   - braintree_execute_graphql: arbitrary query/mutation pass-through,
//     forwarded verbatim, upstream response relayed unmodified
//   - braintree_legacy_id: canned idFromLegacyId query translating legacy
//     identifiers into GraphQL IDs
//
// # Lifecycle
//
// The network transports use the Start/Stop pair; Start returns immediately
// and Stop shuts the transport down with a bounded timeout. The stdio
// transport is served via the blocking ServeStdio, which ends when the
// client closes the pipe.
//
// Tool invocations are independent, stateless request-response cycles. The
// only shared state is the immutable Braintree client; no locking discipline
// is required around tool handling.
package bridge
