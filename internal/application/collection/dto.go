package collection

import (
	"fmt"
	"time"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
)

// DuplicatePolicy decides what happens to a row whose natural key matches an
// order already on file
type DuplicatePolicy string

const (
	// DuplicatePolicySkip drops the duplicate row and counts it
	DuplicatePolicySkip DuplicatePolicy = "SKIP"
	// DuplicatePolicyForceAccept accepts the duplicate anyway. The incoming
	// external order number is discarded so the stored unique numbers never
	// collide; the accepted order gets a generated number.
	DuplicatePolicyForceAccept DuplicatePolicy = "FORCE_ACCEPT"
)

// IsValid returns true for a known policy
func (p DuplicatePolicy) IsValid() bool {
	return p == DuplicatePolicySkip || p == DuplicatePolicyForceAccept
}

// BatchResult counts the fate of every row in one batch of raw orders.
// Fetched counts rows the source produced; every fetched row ends up in
// exactly one of Success, Errors or Duplicates.
type BatchResult struct {
	Fetched    int      `json:"fetched"`
	Success    int      `json:"success"`
	Errors     int      `json:"errors"`
	Duplicates int      `json:"duplicates"`
	ErrorNotes []string `json:"error_notes,omitempty"`
}

// Processed is the number of rows that reached a terminal outcome
func (r BatchResult) Processed() int {
	return r.Success + r.Errors + r.Duplicates
}

// Summary renders the batch outcome the way operators read it: processed
// counts every handled row, not just the new orders
func (r BatchResult) Summary() string {
	return fmt.Sprintf("processed %d of %d fetched (success %d, errors %d, duplicates %d)",
		r.Processed(), r.Fetched, r.Success, r.Errors, r.Duplicates)
}

// ChannelResult is the outcome of one shipper and channel collection attempt
type ChannelResult struct {
	ShipperName string                 `json:"shipper_name"`
	ChannelType masterdata.ChannelType `json:"channel_type"`
	BatchResult
	// Failed marks a channel-level failure (auth, network, bad response); no
	// rows were processed and the cause is recorded
	Failed       bool   `json:"failed"`
	FailureCause string `json:"failure_cause,omitempty"`
}

// RunSummary aggregates every channel attempt of one collection pass
type RunSummary struct {
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Results    []ChannelResult `json:"results"`
}

// TotalFetched sums fetched rows across all channel attempts
func (s RunSummary) TotalFetched() int {
	total := 0
	for _, r := range s.Results {
		total += r.Fetched
	}
	return total
}

// TotalSuccess sums newly created orders across all channel attempts
func (s RunSummary) TotalSuccess() int {
	total := 0
	for _, r := range s.Results {
		total += r.Success
	}
	return total
}

// TotalErrors sums error-order rows across all channel attempts
func (s RunSummary) TotalErrors() int {
	total := 0
	for _, r := range s.Results {
		total += r.Errors
	}
	return total
}

// TotalDuplicates sums skipped duplicate rows across all channel attempts
func (s RunSummary) TotalDuplicates() int {
	total := 0
	for _, r := range s.Results {
		total += r.Duplicates
	}
	return total
}

// FailedChannels counts channel attempts that failed outright
func (s RunSummary) FailedChannels() int {
	total := 0
	for _, r := range s.Results {
		if r.Failed {
			total++
		}
	}
	return total
}
