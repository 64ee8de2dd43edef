package session

import (
	"fmt"

	"github.com/harun/aruna/internal/observability"
	"github.com/rs/zerolog/log"
)

// previewLimit caps the listing preview at 100 characters (runes, so
// multi-byte content is never split mid-character).
const previewLimit = 100

// ListFilter narrows ListSessions output. Nil bounds are not applied.
type ListFilter struct {
	// MinMessages and MaxMessages are inclusive bounds on message count.
	MinMessages *int
	MaxMessages *int
	// Since keeps a session only if at least one of its messages has a
	// timestamp lexicographically >= Since. Timestamps are compared as
	// strings, not parsed; callers must supply comparable ISO-8601 values,
	// and non-ISO timestamps will filter incorrectly.
	Since string
}

// SessionSummary describes one session in a listing.
type SessionSummary struct {
	SessionID      string `json:"session_id"`
	MessageCount   int    `json:"message_count"`
	FirstTimestamp string `json:"first_timestamp,omitempty"`
	LastTimestamp  string `json:"last_timestamp,omitempty"`
	Preview        string `json:"preview"`
}

// SessionSize identifies a session by id and message count.
type SessionSize struct {
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
}

// Stats aggregates the whole store. With zero sessions the average is 0 and
// largest/smallest are nil. Ties for largest/smallest resolve to whichever
// session is encountered first in store iteration order, which is
// unspecified; callers must not depend on a particular winner.
type Stats struct {
	TotalSessions             int          `json:"total_sessions"`
	TotalMessages             int          `json:"total_messages"`
	AverageMessagesPerSession float64      `json:"average_messages_per_session"`
	LargestSession            *SessionSize `json:"largest_session"`
	SmallestSession           *SessionSize `json:"smallest_session"`
}

// BulkDeleteResult partitions the input ids of a bulk deletion. Every input
// id lands in exactly one of Deleted or NotFound; duplicates are evaluated
// independently in input order, so the second occurrence of an id deleted by
// the first is reported as not found.
type BulkDeleteResult struct {
	Deleted       []string `json:"deleted"`
	DeletedCount  int      `json:"deleted_count"`
	NotFound      []string `json:"not_found"`
	NotFoundCount int      `json:"not_found_count"`
}

// Manager provides filtered listing, aggregate statistics, lifecycle
// operations and import/export over a Store.
type Manager struct {
	store *Store
}

// NewManager creates a manager over the given store.
func NewManager(store *Store) *Manager {
	observability.EnsureRegistered()
	return &Manager{store: store}
}

// AppendMessage appends one turn to a session, creating it on first use.
func (m *Manager) AppendMessage(sessionID string, msg Message) {
	m.store.Append(sessionID, msg)
	observability.RecordMessageAppend(msg.Role)
	m.updateActiveSessionsMetric()

	log.Debug().
		Str("session_id", sessionID).
		Str("role", msg.Role).
		Msg("Message appended")
}

// GetMessages returns a copy of the session's messages in append order.
func (m *Manager) GetMessages(sessionID string) []Message {
	return m.store.Get(sessionID)
}

// ListSessions summarizes every session passing the filter. Output order
// follows store iteration order and is not stable across calls.
func (m *Manager) ListSessions(filter ListFilter) []SessionSummary {
	keys := m.store.Keys()
	summaries := make([]SessionSummary, 0, len(keys))

	for _, sessionID := range keys {
		msgs := m.store.Get(sessionID)
		if filter.MinMessages != nil && len(msgs) < *filter.MinMessages {
			continue
		}
		if filter.MaxMessages != nil && len(msgs) > *filter.MaxMessages {
			continue
		}
		if filter.Since != "" && !anySince(msgs, filter.Since) {
			continue
		}
		summaries = append(summaries, summarize(sessionID, msgs))
	}

	return summaries
}

// anySince reports whether any message timestamp compares >= since. Messages
// without a timestamp never match, so a zero-message session never passes.
func anySince(msgs []Message, since string) bool {
	for _, msg := range msgs {
		if msg.Timestamp >= since {
			return true
		}
	}
	return false
}

func summarize(sessionID string, msgs []Message) SessionSummary {
	summary := SessionSummary{
		SessionID:    sessionID,
		MessageCount: len(msgs),
	}
	if len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		summary.FirstTimestamp = msgs[0].Timestamp
		summary.LastTimestamp = last.Timestamp
		summary.Preview = truncateRunes(last.Content, previewLimit)
	}
	return summary
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// Stats computes aggregate statistics over the whole store.
func (m *Manager) Stats() Stats {
	keys := m.store.Keys()
	stats := Stats{TotalSessions: len(keys)}
	if len(keys) == 0 {
		return stats
	}

	for _, sessionID := range keys {
		count := m.store.Len(sessionID)
		stats.TotalMessages += count

		if stats.LargestSession == nil || count > stats.LargestSession.MessageCount {
			stats.LargestSession = &SessionSize{SessionID: sessionID, MessageCount: count}
		}
		if stats.SmallestSession == nil || count < stats.SmallestSession.MessageCount {
			stats.SmallestSession = &SessionSize{SessionID: sessionID, MessageCount: count}
		}
	}

	stats.AverageMessagesPerSession = float64(stats.TotalMessages) / float64(stats.TotalSessions)
	return stats
}

// DeleteSession removes one session and reports whether it existed. Absence
// is a normal false return, not an error.
func (m *Manager) DeleteSession(sessionID string) bool {
	removed := m.store.Remove(sessionID)
	if removed {
		m.updateActiveSessionsMetric()
		log.Info().Str("session_id", sessionID).Msg("Session deleted")
	}
	return removed
}

// DeleteSessions removes the given sessions in input order and returns the
// deleted/not-found partition. The partition is computed in a single pass and
// returned as one result, so callers never observe a half-reported outcome.
func (m *Manager) DeleteSessions(sessionIDs []string) BulkDeleteResult {
	result := BulkDeleteResult{
		Deleted:  []string{},
		NotFound: []string{},
	}

	for _, sessionID := range sessionIDs {
		if m.store.Remove(sessionID) {
			result.Deleted = append(result.Deleted, sessionID)
		} else {
			result.NotFound = append(result.NotFound, sessionID)
		}
	}
	result.DeletedCount = len(result.Deleted)
	result.NotFoundCount = len(result.NotFound)

	m.updateActiveSessionsMetric()
	log.Info().
		Int("deleted", result.DeletedCount).
		Int("not_found", result.NotFoundCount).
		Msg("Bulk session deletion completed")

	return result
}

// ClearAll removes every session and returns the prior count.
func (m *Manager) ClearAll() int {
	count := m.store.Clear()
	observability.SetActiveSessions(0)

	log.Info().Int("sessions", count).Msg("All sessions cleared")
	return count
}

// ExportSession serializes an existing session in the given format. Exporting
// an absent session fails with ErrNotFound; an existing empty session exports
// normally (for CSV, the header row alone).
func (m *Manager) ExportSession(sessionID string, format Format) (string, error) {
	if !m.store.Has(sessionID) {
		observability.RecordExport(string(format), false)
		return "", fmt.Errorf("%w: %q", ErrNotFound, sessionID)
	}

	msgs := m.store.Get(sessionID)

	var out string
	var err error
	switch format {
	case FormatJSON:
		out, err = ExportJSON(msgs)
	case FormatCSV:
		out, err = ExportCSV(msgs)
	case FormatMarkdown:
		out = ExportMarkdown(sessionID, msgs)
	default:
		err = fmt.Errorf("%w: unsupported export format %q", ErrValidation, format)
	}

	observability.RecordExport(string(format), err == nil)
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("session_id", sessionID).
		Str("format", string(format)).
		Int("messages", len(msgs)).
		Msg("Session exported")

	return out, nil
}

// ImportSession parses the payload in the given format and appends the
// resulting messages to the target session, preserving any existing content.
// It returns the number of imported messages. Nothing is appended when
// parsing fails.
func (m *Manager) ImportSession(sessionID string, format Format, data string) (int, error) {
	var msgs []Message
	var err error
	switch format {
	case FormatJSON:
		msgs, err = ImportJSON(data)
	case FormatCSV:
		msgs, err = ImportCSV(data)
	default:
		err = fmt.Errorf("%w: unsupported import format %q", ErrValidation, format)
	}

	if err != nil {
		observability.RecordImport(string(format), false)
		return 0, err
	}

	for _, msg := range msgs {
		m.store.Append(sessionID, msg)
	}

	observability.RecordImport(string(format), true)
	m.updateActiveSessionsMetric()

	log.Info().
		Str("session_id", sessionID).
		Str("format", string(format)).
		Int("messages", len(msgs)).
		Msg("Session imported")

	return len(msgs), nil
}

func (m *Manager) updateActiveSessionsMetric() {
	observability.SetActiveSessions(len(m.store.Keys()))
}
