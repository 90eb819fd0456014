package ecs

// Topic is a typed one-to-many event channel. The per-frame coordinator owns
// each topic; producers get the topic itself as their publish handle and
// consumers each hold their own Sub. Delivery is synchronous: Publish appends
// to every subscriber queue immediately, so a consumer running later in the
// same tick sees the event that tick, and one running earlier sees it on its
// next Drain.
type Topic[T any] struct {
	subs []*Sub[T]
}

// NewTopic creates an empty topic.
func NewTopic[T any]() *Topic[T] {
	return &Topic[T]{}
}

// Subscribe returns a fresh subscriber queue on the topic.
func (t *Topic[T]) Subscribe() *Sub[T] {
	s := &Sub[T]{}
	t.subs = append(t.subs, s)
	return s
}

// Publish delivers the event to every subscriber.
func (t *Topic[T]) Publish(ev T) {
	for _, s := range t.subs {
		s.pending = append(s.pending, ev)
	}
}

// Sub is a single consumer's pending-event queue.
type Sub[T any] struct {
	pending []T
}

// Drain returns all pending events in publish order and clears the queue.
func (s *Sub[T]) Drain() []T {
	if len(s.pending) == 0 {
		return nil
	}
	out := s.pending
	s.pending = nil
	return out
}

// Len reports how many events are pending.
func (s *Sub[T]) Len() int {
	return len(s.pending)
}
