package entity

import (
	"encoding/json"
	"time"
)

// Verdict is the classification service's JSON response, kept byte-for-byte.
// Its shape is defined upstream.
type Verdict = json.RawMessage

// HistoryEntry records one successful classification for a user.
type HistoryEntry struct {
	Filename  string    `json:"filename"`
	Result    Verdict   `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// NewHistoryEntry stamps an entry with the current time.
func NewHistoryEntry(filename string, verdict Verdict) HistoryEntry {
	return HistoryEntry{
		Filename:  filename,
		Result:    verdict,
		Timestamp: time.Now().UTC(),
	}
}
