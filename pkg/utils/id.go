package utils

import (
	"fmt"
	"sync/atomic"
	"time"
)

var idCounter int64

// GenerateID creates a prefixed, roughly time-ordered id.
// Format: prefix-timestamp-counter (e.g. "entry-1705612800000-001").
func GenerateID(prefix string) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, time.Now().UnixMilli(), atomic.AddInt64(&idCounter, 1)%1000)
}

// GenerateEntryID creates a leaderboard-entry id.
func GenerateEntryID() string {
	return GenerateID("entry")
}
