// Package chat implements the interactive client side of the system: it
// connects to the tool broker over MCP, exposes the broker's tools to a
// model, and drives a history-aware conversation loop backed by a session
// store.
package chat
