package syncq

import (
	"errors"
	"testing"
)

func TestQueueEnqueueAndPending(t *testing.T) {
	q := NewQueue(t.TempDir())

	if q.Len() != 0 {
		t.Fatalf("new queue should be empty, got %d", q.Len())
	}

	if err := q.Enqueue("a", "first text"); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if err := q.Enqueue("b", "second text"); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	entries, err := q.Pending()
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "a" || entries[1].ID != "b" {
		t.Errorf("unexpected queue contents: %+v", entries)
	}
	if entries[0].Text != "first text" {
		t.Errorf("queued text lost: %q", entries[0].Text)
	}
}

func TestQueueSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	q := NewQueue(dir)
	if err := q.Enqueue("a", "persisted"); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	reopened := NewQueue(dir)
	if reopened.Len() != 1 {
		t.Errorf("queue lost entries across restart: %d", reopened.Len())
	}
}

func TestQueueFlushDrains(t *testing.T) {
	q := NewQueue(t.TempDir())
	q.Enqueue("a", "one")
	q.Enqueue("b", "two")

	var seen []string
	n, err := q.Flush(func(e Entry) error {
		seen = append(seen, e.ID)
		return nil
	})
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if n != 2 {
		t.Errorf("delivered %d, want 2", n)
	}
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Errorf("flush order wrong: %v", seen)
	}
	if q.Len() != 0 {
		t.Errorf("queue not drained: %d", q.Len())
	}
}

func TestQueueFlushKeepsFailures(t *testing.T) {
	q := NewQueue(t.TempDir())
	q.Enqueue("a", "one")
	q.Enqueue("b", "two")
	q.Enqueue("c", "three")

	n, err := q.Flush(func(e Entry) error {
		if e.ID == "b" {
			return errors.New("transport down")
		}
		return nil
	})
	if err == nil {
		t.Fatal("expected flush error")
	}
	if n != 1 {
		t.Errorf("delivered %d, want 1", n)
	}

	entries, _ := q.Pending()
	if len(entries) != 2 || entries[0].ID != "b" || entries[1].ID != "c" {
		t.Errorf("failed entries not kept in order: %+v", entries)
	}
}

func TestMonitorForcedOffline(t *testing.T) {
	m := NewMonitorWithProbe(func() bool { return true })

	if !m.Check() {
		t.Fatal("probe says online, monitor disagrees")
	}

	m.ForceOffline(true)
	if m.IsOnline() {
		t.Error("forced offline monitor still reports online")
	}
	if m.Check() {
		t.Error("forced offline monitor probed anyway")
	}

	m.ForceOffline(false)
	if !m.Check() {
		t.Error("monitor did not recover after unforcing")
	}
}

func TestMonitorNotifiesTransitions(t *testing.T) {
	online := true
	m := NewMonitorWithProbe(func() bool { return online })

	var events []bool
	m.Subscribe(func(state bool) {
		events = append(events, state)
	})

	m.Check() // online, initial state is online: no transition
	online = false
	m.Check() // -> offline
	m.Check() // still offline: no event
	online = true
	m.Check() // -> online

	want := []bool{false, true}
	if len(events) != len(want) {
		t.Fatalf("got %d events (%v), want %d", len(events), events, len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, events[i], want[i])
		}
	}
}
