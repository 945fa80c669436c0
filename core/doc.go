// Package core provides the foundational domain types and interfaces used by
// AgentBus. It defines the core abstractions for:
//
//   - Agents (units of autonomous work invoked once per task)
//   - StreamEvents (progress + result notifications during streaming invocations)
//   - Content / Parts (role based message segments exchanged with models)
//   - Error taxonomy (invocation failures, unsupported operations)
//
// The package intentionally keeps implementation concerns (model providers,
// transports, concrete agents) out of scope, exposing small interfaces to
// enable custom backends and extensions.
package core
