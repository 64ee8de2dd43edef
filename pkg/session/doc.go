// Package session maintains per-session conversation histories in memory.
//
// Invariants:
// - A session is an ordered, append-only sequence of messages; every read
//   observes messages in append order.
// - Appends to different sessions do not block each other; appends to the
//   same session are serialized.
// - Import and export round-trip role, content and timestamp exactly, and an
//   absent timestamp stays absent (never null, never an empty column drop).
//
// Usage:
//
//	store := session.NewStore()
//	mgr := session.NewManager(store)
//	mgr.AppendMessage("session:1", session.Message{Role: "user", Content: "hello"})
//	out, _ := mgr.ExportSession("session:1", session.FormatJSON)
//	_ = out
package session
