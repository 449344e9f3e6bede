package domain

import "time"

// Summary is the outcome of one sync run.
type Summary struct {
	Fetched         int // New items fetched from Instagram
	Synced          int // Posts created on WordPress
	SkippedBinaries int // Media uploads avoided via the dedup ledger
	Failed          int // Items abandoned after errors
	Duration        time.Duration
}
