package app

import (
	"testing"
	"time"
)

func TestComparerDrainToNewest(t *testing.T) {
	c := newComparer()
	c.requests <- compareRequest{generation: 2, oldText: "b", newText: "b"}
	c.requests <- compareRequest{generation: 3, oldText: "c", newText: "c"}

	req := c.drainToNewest(compareRequest{generation: 1, oldText: "a", newText: "a"})
	if req.generation != 3 {
		t.Errorf("Expected generation 3 after draining, got %d", req.generation)
	}
	if len(c.requests) != 0 {
		t.Errorf("Expected an empty queue after draining, got %d queued", len(c.requests))
	}
}

func TestComparerDeliversResult(t *testing.T) {
	c := newComparer()
	c.Start()
	defer c.Stop()

	c.Request(compareRequest{generation: 1, oldText: "a\nb\n", newText: "a\nc\n"})

	select {
	case res := <-c.results:
		if res.generation != 1 {
			t.Errorf("Expected generation 1, got %d", res.generation)
		}
		if res.result == nil || len(res.result.Records) == 0 {
			t.Fatal("Expected a result with records")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for a compare result")
	}
}

func TestComparerRequestNeverBlocks(t *testing.T) {
	c := newComparer()

	// No worker running, so the queue fills up and older requests
	// have to be discarded to make room
	for i := 1; i <= 100; i++ {
		c.Request(compareRequest{generation: i})
	}

	last := c.drainToNewest(<-c.requests)
	if last.generation != 100 {
		t.Errorf("Expected the newest generation 100 to survive, got %d", last.generation)
	}
}
