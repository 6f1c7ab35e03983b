package interfaces

import "context"

// IDispatcher runs side-effect jobs detached from the request that produced them.
//
// Dispatch never blocks on the job and never reports its outcome; failures are
// logged by the dispatcher.
type IDispatcher interface {
	Dispatch(name string, job func(ctx context.Context) error)
}
