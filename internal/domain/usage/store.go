package usage

import "context"

// Store is the durable, append-only home of usage events. Exactly one
// implementation is constructed at startup (Postgres when DATABASE_URL is
// set, local JSON file otherwise); everything above depends only on this
// interface.
type Store interface {
	// Append persists the full record.
	Append(ctx context.Context, event *Event) error

	// ReadAll returns the persisted history. The Postgres backend bounds
	// the result to the 1000 most recent rows; the file backend is
	// unbounded.
	ReadAll(ctx context.Context) ([]Event, error)

	// Initialize idempotently ensures the backing schema exists. Safe to
	// call repeatedly and from the init endpoint.
	Initialize(ctx context.Context) error

	// Backend names the implementation for logs and metrics.
	Backend() string
}
