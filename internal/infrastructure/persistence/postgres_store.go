package persistence

import (
	"context"

	"gorm.io/gorm"

	"kawan-server/internal/domain/usage"
)

// readLimit caps the relational ReadAll to the most recent rows. Views
// computed over the capped window (notably totalUsers) are approximations
// once the table outgrows it.
const readLimit = 1000

// PostgresStore implements usage.Store on a Postgres table via GORM.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore creates a new PostgresStore
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append persists one usage event as a row. The per-row INSERT is atomic,
// so concurrent appends need no extra coordination here.
func (s *PostgresStore) Append(ctx context.Context, event *usage.Event) error {
	return s.db.WithContext(ctx).Create(event).Error
}

// ReadAll returns the most recent rows, newest first.
func (s *PostgresStore) ReadAll(ctx context.Context) ([]usage.Event, error) {
	var events []usage.Event
	err := s.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(readLimit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Initialize ensures the token_usage table exists. AutoMigrate is
// create-if-not-exists, so repeated and concurrent calls are safe.
func (s *PostgresStore) Initialize(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&usage.Event{})
}

// Backend names the implementation for logs and metrics.
func (s *PostgresStore) Backend() string {
	return "postgres"
}
