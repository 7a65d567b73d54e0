package logging

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStreamHubPublishAssignsSequence(t *testing.T) {
	hub := NewStreamHub(10)
	first := hub.Publish(LogEvent{Message: "one"})
	second := hub.Publish(LogEvent{Message: "two"})
	if first != 1 || second != 2 {
		t.Fatalf("sequences = %d, %d", first, second)
	}
	if hub.Sequence() != 2 {
		t.Fatalf("Sequence() = %d", hub.Sequence())
	}
	events, _ := hub.Tail(10)
	if len(events) != 2 || events[0].Timestamp.IsZero() {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestStreamHubDropsOldestWhenFull(t *testing.T) {
	hub := NewStreamHub(2)
	for _, msg := range []string{"a", "b", "c"} {
		hub.Publish(LogEvent{Message: msg})
	}
	events, next := hub.Tail(0)
	if len(events) != 2 || events[0].Message != "b" || events[1].Message != "c" {
		t.Fatalf("unexpected buffer %+v", events)
	}
	if next != 3 {
		t.Fatalf("next = %d", next)
	}
}

func TestStreamHubFetchSince(t *testing.T) {
	hub := NewStreamHub(10)
	hub.Publish(LogEvent{Message: "before"})
	mark := hub.Sequence()
	hub.Publish(LogEvent{Message: "after-1"})
	hub.Publish(LogEvent{Message: "after-2"})

	events, next, err := hub.Fetch(context.Background(), mark, 0, false)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(events) != 2 || events[0].Message != "after-1" || next != 3 {
		t.Fatalf("events=%+v next=%d", events, next)
	}

	events, _, _ = hub.Fetch(context.Background(), next, 0, false)
	if len(events) != 0 {
		t.Fatalf("expected nothing new, got %+v", events)
	}
}

func TestStreamHubFetchWaitsForEvent(t *testing.T) {
	hub := NewStreamHub(10)
	go func() {
		time.Sleep(10 * time.Millisecond)
		hub.Publish(LogEvent{Message: "late"})
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	events, _, err := hub.Fetch(ctx, 0, 0, true)
	if err != nil || len(events) != 1 || events[0].Message != "late" {
		t.Fatalf("events=%+v err=%v", events, err)
	}
}

func TestStreamHubFetchHonorsCancellation(t *testing.T) {
	hub := NewStreamHub(10)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, _, err := hub.Fetch(ctx, 0, 0, true)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestNilStreamHub(t *testing.T) {
	var hub *StreamHub
	if hub.Publish(LogEvent{}) != 0 {
		t.Fatal("nil hub should ignore publish")
	}
	if events, _ := hub.Tail(5); events != nil {
		t.Fatalf("nil hub tail = %v", events)
	}
}
