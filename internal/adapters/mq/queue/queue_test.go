package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/gobu/internal/domain/model"
)

func invocation(id string) model.Invocation {
	return model.Invocation{ID: id, GuildID: "guild-1", ChannelID: "chan-1", Content: "pets rain core", ReceivedAt: time.Now()}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if !q.Enqueue(ctx, invocation("inv1")) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue(ctx)
	if got.ID != "inv1" {
		t.Errorf("expected inv1, got %v", got.ID)
	}
	if got.Content != "pets rain core" {
		t.Errorf("expected content to survive the queue, got %q", got.Content)
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if q.Capacity() != 2 {
		t.Errorf("expected capacity 2, got %d", q.Capacity())
	}
	if !q.Enqueue(ctx, invocation("inv1")) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, invocation("inv2")) {
		t.Error("expected enqueue to succeed")
	}

	if q.Enqueue(ctx, invocation("inv3")) {
		t.Error("expected enqueue to fail when full")
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_BufferNeverBelowCapacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4), WithBufferSize(1))
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if !q.Enqueue(ctx, invocation(fmt.Sprintf("inv%d", i))) {
			t.Fatalf("expected enqueue %d to succeed", i)
		}
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(100))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	producers, perProducer := 10, 100

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				for !q.Enqueue(ctx, invocation(fmt.Sprintf("inv%d_%d", id, j))) {
					time.Sleep(time.Millisecond)
				}
			}
		}(i)
	}

	consumed := make(chan string, producers*perProducer)
	for i := 0; i < 4; i++ {
		go func() {
			for inv := range q.Dequeue(ctx) {
				consumed <- inv.ID
			}
		}()
	}

	wg.Wait()

	seen := make(map[string]bool)
	timeout := time.After(2 * time.Second)
	for len(seen) < producers*perProducer {
		select {
		case id := <-consumed:
			seen[id] = true
		case <-timeout:
			t.Fatalf("consumed %d of %d invocations", len(seen), producers*perProducer)
		}
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected final length 0, got %d", l)
	}
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	if !q.Enqueue(ctx, invocation("inv1")) {
		t.Error("expected enqueue to succeed")
	}

	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}

	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}

	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}

	if q.Enqueue(ctx, invocation("inv2")) {
		t.Error("expected enqueue to fail after closing")
	}

	// Buffered invocations drain before the channel closes.
	ch := q.Dequeue(ctx)
	timeout := time.After(100 * time.Millisecond)
	drained := 0
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				if drained != 1 {
					t.Errorf("expected 1 drained invocation, got %d", drained)
				}
				if err := q.Close(); err != nil {
					t.Errorf("expected second close to succeed, got error: %v", err)
				}
				return
			}
			drained++
		case <-timeout:
			t.Fatal("expected dequeue channel to be closed within timeout")
		}
	}
}
