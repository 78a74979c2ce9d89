package order

import (
	"testing"
	"time"

	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/types"
)

func TestBuildNumber(t *testing.T) {
	tests := []struct {
		year     int
		month    time.Month
		seq      int64
		expected string
	}{
		{2026, time.February, 7, "PED260200007"},
		{2026, time.January, 1, "PED260100001"},
		{2025, time.December, 99999, "PED251299999"},
		{2030, time.October, 42, "PED301000042"},
	}

	for _, tt := range tests {
		if got := BuildNumber(tt.year, tt.month, tt.seq); got != tt.expected {
			t.Errorf("BuildNumber(%d, %v, %d): got %q, want %q",
				tt.year, tt.month, tt.seq, got, tt.expected)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	terminal := map[Status]bool{
		StatusPending:   false,
		StatusConfirmed: false,
		StatusPreparing: false,
		StatusShipped:   false,
		StatusDelivered: true,
		StatusCancelled: true,
	}

	for st, want := range terminal {
		if got := st.IsTerminal(); got != want {
			t.Errorf("%q.IsTerminal(): got %v, want %v", st, got, want)
		}
	}
}

func TestTransition(t *testing.T) {
	now := time.Now()
	o := &Order{
		ID:     id.NewOrderID(),
		Status: StatusPending,
		StatusHistory: []StatusEntry{
			{Status: StatusPending, Timestamp: now},
		},
	}

	if err := o.Transition(StatusConfirmed, "pagamento recebido", now); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if o.Status != StatusConfirmed {
		t.Errorf("status: got %q, want %q", o.Status, StatusConfirmed)
	}
	if len(o.StatusHistory) != 2 {
		t.Fatalf("history length: got %d, want 2", len(o.StatusHistory))
	}
	last := o.StatusHistory[len(o.StatusHistory)-1]
	if last.Status != StatusConfirmed || last.Note != "pagamento recebido" {
		t.Errorf("history entry: got %+v", last)
	}
}

func TestTransitionRejectsUnknown(t *testing.T) {
	o := &Order{Status: StatusPending}
	if err := o.Transition("lost", "", time.Now()); err == nil {
		t.Error("expected error for unknown status")
	}
	if o.Status != StatusPending {
		t.Errorf("status mutated on rejected transition: %q", o.Status)
	}
}

func TestTransitionRejectsTerminal(t *testing.T) {
	for _, st := range []Status{StatusDelivered, StatusCancelled} {
		o := &Order{Status: st}
		if err := o.Transition(StatusPending, "", time.Now()); err == nil {
			t.Errorf("expected error leaving terminal status %q", st)
		}
	}
}

func TestTransitionSkipsIntermediateStates(t *testing.T) {
	// No adjacency rules: pending straight to delivered is allowed.
	o := &Order{Status: StatusPending}
	if err := o.Transition(StatusDelivered, "", time.Now()); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if o.Status != StatusDelivered {
		t.Errorf("status: got %q, want %q", o.Status, StatusDelivered)
	}
}

func TestLineItemTotal(t *testing.T) {
	li := LineItem{UnitPrice: types.BRL(12990), Quantity: 3}
	if got := li.Total(); !got.Equal(types.BRL(38970)) {
		t.Errorf("Total: got %v, want %v", got, types.BRL(38970))
	}
}
