package enrich

import (
	"testing"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want Action
	}{
		{"sentinel", Row{Sentinel: true}, ActionLoadMore},
		{"sentinel with id", Row{ID: "x", Sentinel: true}, ActionLoadMore},
		{"empty id", Row{}, ActionIgnore},
		{"name already known", Row{ID: "spotify:track:a", NameKnown: true}, ActionIgnore},
		{"needs fetch", Row{ID: "spotify:track:a"}, ActionEnqueue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.row); got != tt.want {
				t.Errorf("Decide(%+v) = %v, want %v", tt.row, got, tt.want)
			}
		})
	}
}

func TestDispatcherOncePerStay(t *testing.T) {
	var enqueued []string
	d := NewDispatcher(func(id string) { enqueued = append(enqueued, id) }, nil)

	rows := []Row{
		{ID: "a"},
		{ID: "b"},
		{ID: "c", NameKnown: true},
	}
	d.Visible(rows)
	// Repeated reports of the same viewport do not re-fire.
	d.Visible(rows)
	d.Visible(rows)

	if len(enqueued) != 2 || enqueued[0] != "a" || enqueued[1] != "b" {
		t.Errorf("enqueued = %v, want [a b] exactly once each", enqueued)
	}
}

func TestDispatcherRefiresAfterLeavingView(t *testing.T) {
	var enqueued []string
	d := NewDispatcher(func(id string) { enqueued = append(enqueued, id) }, nil)

	d.Visible([]Row{{ID: "a"}})
	// Scrolled out of view, then back in: the row is reported again so a
	// failed fetch gets another chance. The scheduler ignores IDs it has
	// already satisfied.
	d.Visible([]Row{{ID: "b"}})
	d.Visible([]Row{{ID: "a"}})

	if len(enqueued) != 3 || enqueued[2] != "a" {
		t.Errorf("enqueued = %v, want a re-reported after leaving view", enqueued)
	}
}

func TestDispatcherLoadMore(t *testing.T) {
	var loads int
	d := NewDispatcher(func(string) {}, func() { loads++ })

	d.Visible([]Row{{ID: "a"}, {Sentinel: true}})
	if loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}

	// Sentinel is not deduplicated: every sighting may request a page. The
	// page loader is responsible for ignoring redundant requests.
	d.Visible([]Row{{Sentinel: true}})
	if loads != 2 {
		t.Errorf("loads = %d, want 2", loads)
	}
}

func TestDispatcherReset(t *testing.T) {
	var enqueued []string
	d := NewDispatcher(func(id string) { enqueued = append(enqueued, id) }, nil)

	d.Visible([]Row{{ID: "a"}})
	d.Reset()
	d.Visible([]Row{{ID: "a"}})

	if len(enqueued) != 2 {
		t.Errorf("enqueued = %v, want a twice after Reset", enqueued)
	}
}

func TestDispatcherClose(t *testing.T) {
	var enqueued []string
	d := NewDispatcher(func(id string) { enqueued = append(enqueued, id) }, nil)

	d.Close()
	d.Visible([]Row{{ID: "a"}, {Sentinel: true}})

	if len(enqueued) != 0 {
		t.Errorf("enqueued = %v after Close", enqueued)
	}
}
