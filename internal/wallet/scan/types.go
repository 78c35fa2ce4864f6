package scan

import (
	"context"
)

// Service settles transactions whose confirmation was never observed by the pipeline.
type Service interface {
	// Run scans every interval until ctx is done.
	Run(ctx context.Context) error
	// ScanOnce checks one batch of unresolved transactions against the chain.
	ScanOnce(ctx context.Context) (*Progress, error)
}

// Progress of a single scan
type Progress struct {
	Checked  int
	Resolved int
	Expired  int
	Pending  int
	Failed   int
}
