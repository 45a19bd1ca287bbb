package notification

import (
	"sort"
	"strings"
)

// Report is the outcome of a best-effort delivery. A failed delivery never fails the order;
// callers log the report and move on.
type Report struct {
	Attempted int
	Sent      []string
	Failed    map[string]error
}

func (r Report) OK() bool {
	return len(r.Failed) == 0
}

// Skipped reports whether nothing was attempted, e.g. no recipients configured.
func (r Report) Skipped() bool {
	return r.Attempted == 0
}

func (r Report) FailedRecipients() []string {
	out := make([]string, 0, len(r.Failed))
	for addr := range r.Failed {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}

func (r Report) String() string {
	if r.Skipped() {
		return "skipped"
	}
	var b strings.Builder
	b.WriteString("sent=")
	b.WriteString(strings.Join(r.Sent, ","))
	if !r.OK() {
		b.WriteString(" failed=")
		b.WriteString(strings.Join(r.FailedRecipients(), ","))
	}
	return b.String()
}
