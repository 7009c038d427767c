package app

import (
	"log"

	"github.com/pstuifzand/tui-diff/internal/diff"
)

// compareRequest carries one pair of texts to the compare worker. The
// generation number ties the eventual result back to the request that
// produced it; the app only applies a result whose generation is still
// the newest one issued.
type compareRequest struct {
	generation int
	oldText    string
	newText    string
}

// compareResult is delivered back to the app's event loop
type compareResult struct {
	generation int
	result     *diff.Result
}

// comparer runs comparisons on a single worker goroutine so typing in
// the editor never blocks on a large diff. Requests are buffered; the
// worker drains the queue to the newest request before computing, so a
// burst of edits costs one comparison
type comparer struct {
	requests chan compareRequest
	results  chan compareResult
	stop     chan struct{}
}

func newComparer() *comparer {
	return &comparer{
		requests: make(chan compareRequest, 16),
		results:  make(chan compareResult, 1),
		stop:     make(chan struct{}),
	}
}

// Start launches the worker goroutine
func (c *comparer) Start() {
	go c.loop()
}

// Stop terminates the worker
func (c *comparer) Stop() {
	close(c.stop)
}

// Request queues a comparison. Never blocks the caller: if the queue is
// full the oldest queued request is discarded, since only the newest
// request matters anyway
func (c *comparer) Request(req compareRequest) {
	for {
		select {
		case c.requests <- req:
			return
		default:
		}
		select {
		case <-c.requests:
		default:
		}
	}
}

func (c *comparer) loop() {
	for {
		select {
		case req := <-c.requests:
			req = c.drainToNewest(req)
			result := diff.Compare(req.oldText, req.newText)
			select {
			case c.results <- compareResult{generation: req.generation, result: result}:
			case <-c.stop:
				return
			}
		case <-c.stop:
			return
		}
	}
}

// drainToNewest empties the request queue and returns the last entry,
// superseding every older request in one step
func (c *comparer) drainToNewest(req compareRequest) compareRequest {
	for {
		select {
		case newer := <-c.requests:
			if newer.generation < req.generation {
				log.Printf("compare request out of order: %d after %d", newer.generation, req.generation)
			}
			req = newer
		default:
			return req
		}
	}
}
