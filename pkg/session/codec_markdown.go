package session

import (
	"fmt"
	"strings"
	"time"
)

// ExportMarkdown renders a session as a Markdown document: a heading with the
// session id, the export wall-clock time, the message count, then one section
// per message with the role upper-cased, the timestamp italicized when
// present, and the content verbatim. Markdown is export-only; there is no
// corresponding import.
func ExportMarkdown(sessionID string, msgs []Message) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Chat Session: %s\n\n", sessionID)
	fmt.Fprintf(&b, "**Exported:** %s\n\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "**Total Messages:** %d\n\n", len(msgs))

	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("---\n\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", strings.ToUpper(msg.Role))
		if msg.Timestamp != "" {
			fmt.Fprintf(&b, "*%s*\n\n", msg.Timestamp)
		}
		fmt.Fprintf(&b, "%s\n\n", msg.Content)
	}

	return b.String()
}
