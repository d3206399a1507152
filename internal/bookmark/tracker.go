package bookmark

import "context"

// DefaultSaveEvery is how many scroll steps pass between writes.
const DefaultSaveEvery = 10

// Tracker throttles bookmark writes for one open file so that scrolling
// does not write to the durable store on every step.
type Tracker struct {
	store    *Store
	identity string
	every    int
	pending  int
	last     int
}

// NewTracker returns a Tracker that saves every n-th move. n <= 0 selects
// DefaultSaveEvery.
func NewTracker(store *Store, identity string, n int) *Tracker {
	if n <= 0 {
		n = DefaultSaveEvery
	}
	return &Tracker{store: store, identity: identity, every: n, last: None}
}

// Moved notes a scroll to line and saves when the cadence is due. It
// reports whether a write happened.
func (t *Tracker) Moved(ctx context.Context, line int) (bool, error) {
	t.pending++
	if t.pending < t.every {
		return false, nil
	}
	return true, t.save(ctx, line)
}

// Flush saves line unless it is already the stored value.
func (t *Tracker) Flush(ctx context.Context, line int) error {
	if t.pending == 0 && line == t.last {
		return nil
	}
	return t.save(ctx, line)
}

func (t *Tracker) save(ctx context.Context, line int) error {
	if err := t.store.Save(ctx, t.identity, line); err != nil {
		return err
	}
	t.pending = 0
	t.last = line
	return nil
}
