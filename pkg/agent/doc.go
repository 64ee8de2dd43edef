// Package agent invokes LLM providers to produce assistant replies.
//
// The gateway treats a provider as an opaque function from a conversation
// history to one assistant reply; no tool calls, no streaming. Providers are
// selected by name through NewProvider.
package agent
