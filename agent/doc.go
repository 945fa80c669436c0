// Package agent contains the concrete core.Agent implementations. The central
// type is LLMAgent, a model-backed agent with function calling: it loops
// between model generation and tool execution until the model produces a
// final text answer. InvokeStream additionally surfaces hook events
// (agent_start, tool_start, tool_end, agent_end) while the loop runs.
package agent
