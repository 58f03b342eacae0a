// Package ticker arbitrates which short-lived text message is shown on the
// scrolling ticker strip at any instant.
package ticker

import (
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Item is one expiring prioritized message. Lower Priority wins; ties go
// to the earlier push.
type Item struct {
	Text      string
	Priority  int
	ExpiresAt time.Time

	seq uint64
}

// Queue is safe for concurrent Push and Current. Eviction of expired items
// is lazy: it happens on each read, so an expired text is never returned
// even though no background sweep exists. Item counts stay tiny (<10), a
// full resort per push is fine.
type Queue struct {
	mu    sync.Mutex
	clock clock.Clock
	items []Item
	seq   uint64
}

func NewQueue(cl clock.Clock) *Queue {
	return &Queue{clock: cl}
}

// Push inserts a message living for ttl. No dedup: the same text pushed
// twice yields two independent items.
func (q *Queue) Push(text string, ttl time.Duration, priority int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seq++
	q.items = append(q.items, Item{
		Text:      text,
		Priority:  priority,
		ExpiresAt: q.clock.Now().Add(ttl),
		seq:       q.seq,
	})
	sort.Slice(q.items, func(i, j int) bool {
		if q.items[i].Priority != q.items[j].Priority {
			return q.items[i].Priority < q.items[j].Priority
		}
		return q.items[i].seq < q.items[j].seq
	})
}

// Current drops expired items and returns the winning text, or "" when
// nothing is live (the caller supplies a fallback).
func (q *Queue) Current() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := q.clock.Now()
	live := q.items[:0]
	for _, it := range q.items {
		if it.ExpiresAt.After(now) {
			live = append(live, it)
		}
	}
	q.items = live
	if len(q.items) == 0 {
		return ""
	}
	return q.items[0].Text
}

// Len reports the number of items that were live at the last eviction.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
