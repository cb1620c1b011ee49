package game

import (
	"container/heap"
	"time"
)

// eventKind enumerates deferred engine events.
type eventKind int

const (
	eventSuccessResolve eventKind = iota // success display delay elapsed: cards become matched
	eventMismatchResolve                 // penalty delay elapsed: HP deduction and unfreeze
	eventSkillExpire                     // skill effect duration elapsed
)

// String returns a log-friendly name for an eventKind.
func (k eventKind) String() string {
	switch k {
	case eventSuccessResolve:
		return "success_resolve"
	case eventMismatchResolve:
		return "mismatch_resolve"
	case eventSkillExpire:
		return "skill_expire"
	default:
		return "unknown"
	}
}

// event is a deferred state transition. It only fires if its epoch equals the
// engine's epoch when it comes due.
type event struct {
	due   time.Time
	seq   uint64
	epoch uint64
	kind  eventKind
	seat  int
	cards []string

	skill SkillKind
	gen   uint64
}

// eventQueue is a min-heap ordered by due time, then by scheduling order.
type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(*event)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return ev
}

// scheduler hands out sequence numbers and keeps the queue of deferred events.
type scheduler struct {
	queue eventQueue
	seq   uint64
}

func (s *scheduler) push(ev *event) {
	s.seq++
	ev.seq = s.seq
	heap.Push(&s.queue, ev)
}

// peek returns the earliest event whose epoch is current, dropping stale ones.
func (s *scheduler) peek(epoch uint64) *event {
	for len(s.queue) > 0 {
		if s.queue[0].epoch == epoch {
			return s.queue[0]
		}
		heap.Pop(&s.queue)
	}
	return nil
}

func (s *scheduler) pop() *event {
	return heap.Pop(&s.queue).(*event)
}

func (s *scheduler) len() int { return len(s.queue) }
