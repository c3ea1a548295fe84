package enrich

import "sync"

// Action is the outcome of a visibility check on one list row.
type Action int

const (
	// ActionIgnore means the row needs nothing.
	ActionIgnore Action = iota
	// ActionEnqueue means the row's metadata should be fetched.
	ActionEnqueue
	// ActionLoadMore means the row is a pagination sentinel and the next
	// page should be requested.
	ActionLoadMore
)

// Row describes a rendered list row for the visibility check.
type Row struct {
	// ID identifies the entity to enrich. Empty for sentinel rows.
	ID string
	// NameKnown is true when the row already has display metadata and
	// needs no fetch.
	NameKnown bool
	// Sentinel marks the trailing "load more" row of a paginated list.
	Sentinel bool
}

// Decide maps one newly visible row to the action it needs. It is pure so
// the policy can be tested without a scheduler.
func Decide(row Row) Action {
	if row.Sentinel {
		return ActionLoadMore
	}
	if row.ID == "" || row.NameKnown {
		return ActionIgnore
	}
	return ActionEnqueue
}

// Dispatcher turns row visibility into enqueues, firing at most once per
// row ID while it stays in view. A row that scrolls out and back in is
// reported again; the scheduler's idempotence absorbs IDs already
// satisfied, so only failed ones actually retry.
type Dispatcher struct {
	mu       sync.Mutex
	visible  map[string]bool
	enqueue  func(id string)
	loadMore func()
	closed   bool
}

// NewDispatcher creates a dispatcher. loadMore may be nil for lists that
// are not paginated.
func NewDispatcher(enqueue func(id string), loadMore func()) *Dispatcher {
	return &Dispatcher{
		visible:  make(map[string]bool),
		enqueue:  enqueue,
		loadMore: loadMore,
	}
}

// Visible reports the full set of rows currently in (or near) the viewport.
// Rows that were already in the previous report are skipped.
func (d *Dispatcher) Visible(rows []Row) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	var fetch []string
	loadMore := false
	next := make(map[string]bool, len(rows))
	for _, row := range rows {
		switch Decide(row) {
		case ActionEnqueue:
			next[row.ID] = true
			if !d.visible[row.ID] {
				fetch = append(fetch, row.ID)
			}
		case ActionLoadMore:
			loadMore = true
		}
	}
	d.visible = next
	d.mu.Unlock()

	for _, id := range fetch {
		d.enqueue(id)
	}
	if loadMore && d.loadMore != nil {
		d.loadMore()
	}
}

// Reset forgets the visible set, for when the underlying list is replaced.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.visible = make(map[string]bool)
}

// Close makes further visibility reports no-ops.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}
