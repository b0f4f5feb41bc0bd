package workers

import "context"

// WorkerHandler decodes raw event payloads into T and applies them.
// Decode returns nil, nil for events the worker should ignore.
type WorkerHandler[T any] interface {
	Type() string
	Decode(value []byte) (*T, error)
	Apply(ctx context.Context, item *T) error
}
