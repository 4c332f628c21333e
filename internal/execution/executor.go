package execution

import (
	"context"

	"cpr/internal/domain"
)

// Launcher starts the process of one occurrence and returns it running
type Launcher interface {
	Launch(ctx context.Context, occ domain.Occurrence) (*domain.TestRun, error)
}

// Observer receives scheduler events. Both methods are called from the
// scheduler's control loop only, never concurrently.
type Observer interface {
	// Completed is called once per harvested run, in harvest order.
	Completed(run *domain.TestRun)
	// Waiting is called on each status tick while no slot is free or the
	// queue is drained, with the runs still in flight.
	Waiting(running []*domain.TestRun)
}
