// Package constants holds string identifiers shared between config and infra providers.
package constants

const (
	EnvLocal = "local"

	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// HistoryStatus values describe what happened to a verdict after classification.
const (
	HistoryRecorded = "recorded" // appended to the caller's history
	HistorySkipped  = "skipped"  // no valid session token, nothing to record against
	HistoryFailed   = "failed"   // identity resolved but the store rejected the append
)

// HeaderHistoryStatus carries the HistoryStatus on classification responses.
const HeaderHistoryStatus = "X-History-Status"
