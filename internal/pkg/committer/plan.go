// Package committer collects Spanner mutations into a plan and applies them.
//
// Writers build mutations without touching the database, add them to a
// CommitPlan, and hand the plan to a Committer:
//
//	plan := committer.NewPlan()
//	for _, p := range products {
//	    plan.Add(model.InsertMut(p))
//	}
//	return comm.ApplyInBatches(ctx, plan, 500)
package committer

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
)

// CommitPlan is an ordered list of Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Batches splits the plan into consecutive chunks of at most size mutations.
// A non-positive size yields the whole plan as one chunk.
func (cp *CommitPlan) Batches(size int) [][]*spanner.Mutation {
	if cp.IsEmpty() {
		return nil
	}
	if size <= 0 || size >= len(cp.mutations) {
		return [][]*spanner.Mutation{cp.mutations}
	}

	batches := make([][]*spanner.Mutation, 0, (len(cp.mutations)+size-1)/size)
	for start := 0; start < len(cp.mutations); start += size {
		end := start + size
		if end > len(cp.mutations) {
			end = len(cp.mutations)
		}
		batches = append(batches, cp.mutations[start:end])
	}
	return batches
}

// Applier is the part of *spanner.Client a Committer needs.
type Applier interface {
	Apply(ctx context.Context, ms []*spanner.Mutation, opts ...spanner.ApplyOption) (time.Time, error)
}

// Committer applies CommitPlans.
type Committer struct {
	client Applier
}

// NewCommitter creates a new Committer.
func NewCommitter(client Applier) *Committer {
	return &Committer{client: client}
}

// Apply executes the whole plan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	return c.ApplyInBatches(ctx, plan, 0)
}

// ApplyInBatches commits the plan in chunks of at most size mutations, each
// chunk atomically. Chunks committed before a failure stay committed.
func (c *Committer) ApplyInBatches(ctx context.Context, plan *CommitPlan, size int) error {
	for i, batch := range plan.Batches(size) {
		if _, err := c.client.Apply(ctx, batch); err != nil {
			return fmt.Errorf("failed to apply commit plan batch %d: %w", i, err)
		}
	}
	return nil
}
