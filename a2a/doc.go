// Package a2a exposes agents over the Agent2Agent (A2A) protocol. The
// Executor bridges a core.Agent to the a2asrv.AgentExecutor interface,
// translating stream events into task status and artifact updates; Server
// wires the executor, an agent card, and a task store into an HTTP endpoint
// speaking JSON-RPC with the card published at the well-known path.
package a2a
