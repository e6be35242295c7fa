package actions

import (
	"fmt"
	"time"
)

// Ledger suppresses re-applying an action already processed earlier in the
// same conversation. Fingerprints are derived from the action kind, a
// best-effort payload identity, and the wall clock truncated to whole
// seconds, so near-simultaneous duplicate pushes collapse to one entry.
// All calls happen on the single UI goroutine; membership check and insert
// are not safe for concurrent callers.
type Ledger struct {
	seen map[string]struct{}
	now  func() time.Time
}

func NewLedger() *Ledger {
	return &Ledger{
		seen: make(map[string]struct{}),
		now:  time.Now,
	}
}

// Fingerprint derives the dedup key for an action. Two genuinely distinct
// actions sharing kind and identity within the same second are
// indistinguishable; the second one is dropped.
func (l *Ledger) Fingerprint(action Action) string {
	return fmt.Sprintf("%s-%s-%d", action.Type, action.identity(), l.now().Unix())
}

func (l *Ledger) Seen(fingerprint string) bool {
	if l == nil {
		return false
	}
	_, ok := l.seen[fingerprint]
	return ok
}

func (l *Ledger) Record(fingerprint string) {
	if l == nil {
		return
	}
	l.seen[fingerprint] = struct{}{}
}

// Reset clears the ledger. Called when the conversation is cleared or a
// stored transcript is about to be reprocessed, never per turn.
func (l *Ledger) Reset() {
	if l == nil {
		return
	}
	l.seen = make(map[string]struct{})
}

func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.seen)
}
