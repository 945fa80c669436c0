// Package broker exposes remote A2A agents as MCP tools. The Bridge sends a
// single question to an agent over the A2A protocol and returns the answer
// text; the Server registers one MCP tool per agent (web_tool, rag_tool) over
// streamable HTTP so any MCP client can delegate work to the agents.
//
// Broker tools never fail at the protocol level: every error condition is
// collapsed into a descriptive result string so the calling model can read
// and react to it.
package broker
