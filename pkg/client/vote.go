package client

import (
	"context"
	"sync"
)

// VoteSnapshot is the (voted, count) pair a vote control renders.
type VoteSnapshot struct {
	Upvoted    bool
	Reputation int
}

// VoteResult is what the server answered for one upvote request.
type VoteResult struct {
	Applied    bool
	Reputation int
}

// VoteFunc performs the actual server call for one click.
type VoteFunc func(ctx context.Context) (VoteResult, error)

// VoteController drives one project's upvote control optimistically: the
// click flips the rendered pair immediately, the server call settles later.
// Success keeps the optimistic values; failure rolls back to the exact
// pre-click pair. A generation counter voids responses that a newer click
// has superseded.
type VoteController struct {
	mu         sync.Mutex
	current    VoteSnapshot
	pending    int
	generation uint64
	onChange   func(VoteSnapshot)
}

// NewVoteController starts from the authoritative pair, typically taken from
// a catalog fetch. onChange may be nil.
func NewVoteController(initial VoteSnapshot, onChange func(VoteSnapshot)) *VoteController {
	return &VoteController{current: initial, onChange: onChange}
}

func (vc *VoteController) Snapshot() VoteSnapshot {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.current
}

// Pending reports whether a click is still in flight, so the caller can
// disable the control. Click itself never blocks on it.
func (vc *VoteController) Pending() bool {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.pending > 0
}

// Reconcile replaces the state with an authoritative pair, typically from a
// fresh catalog fetch. Responses to clicks that predate it become no-ops.
func (vc *VoteController) Reconcile(authoritative VoteSnapshot) {
	vc.mu.Lock()
	vc.current = authoritative
	vc.generation++
	vc.mu.Unlock()
	vc.notify(authoritative)
}

func (vc *VoteController) notify(s VoteSnapshot) {
	if vc.onChange != nil {
		vc.onChange(s)
	}
}

// Click registers an upvote. With a nil identity it returns ErrLoginRequired
// and changes nothing. Otherwise the optimistic flip is applied synchronously
// and the server call runs in the background; the returned channel settles
// with the final error (nil on success).
func (vc *VoteController) Click(ctx context.Context, user *Identity, do VoteFunc) <-chan error {
	done := make(chan error, 1)

	if user == nil {
		done <- ErrLoginRequired
		return done
	}

	vc.mu.Lock()
	if vc.current.Upvoted {
		// already voted: idempotent, nothing in flight
		vc.mu.Unlock()
		done <- nil
		return done
	}

	before := vc.current
	vc.current = VoteSnapshot{Upvoted: true, Reputation: before.Reputation + 1}
	optimistic := vc.current
	vc.pending++
	vc.generation++
	gen := vc.generation
	vc.mu.Unlock()

	vc.notify(optimistic)

	go func() {
		_, err := do(ctx)

		vc.mu.Lock()
		vc.pending--
		stale := gen != vc.generation
		if err != nil && !stale {
			// roll back to the exact pre-click pair
			vc.current = before
		}
		settled := vc.current
		vc.mu.Unlock()

		if stale {
			// a newer click owns the state now
			done <- err
			return
		}
		if err != nil {
			vc.notify(settled)
			done <- err
			return
		}
		// success keeps the optimistic values; the next authoritative
		// fetch reconciles any drift
		done <- nil
	}()

	return done
}
