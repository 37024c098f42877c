package notify

import "context"

// Relay forwards an already rendered message to an operator channel.
type Relay interface {
	Notify(ctx context.Context, text string) error
}

// Result is the outcome of a best-effort delivery. Callers log it and move
// on; it never changes the outcome of the operation that produced it.
type Result struct {
	Delivered bool
	Err       error
}

func Deliver(ctx context.Context, relay Relay, text string) Result {
	if relay == nil {
		return Result{}
	}
	if err := relay.Notify(ctx, text); err != nil {
		return Result{Err: err}
	}
	return Result{Delivered: true}
}
