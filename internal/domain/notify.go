package domain

import "context"

// Change describes a successful mutation for downstream subscribers (e.g. a
// realtime feed or mail dispatcher).
type Change struct {
	Entity string // "event", "booking", "timeslot"
	Action string // "created", "updated", "published", "allocated", "released", "deleted"
	ID     string
}

// ChangeNotifier receives a Change after each successful mutation.
// Delivery is fire-and-forget: implementations must not influence the outcome
// of the mutation they observe, and the core stays correct if no subscriber
// ever sees the change.
type ChangeNotifier interface {
	Notify(ctx context.Context, change Change)
}

// NoopNotifier discards all changes.
type NoopNotifier struct{}

// Notify implements ChangeNotifier.
func (NoopNotifier) Notify(context.Context, Change) {}
