package repository

import (
	"context"
	"database/sql"
)

// SubscriberRepo provides the `newsletter_subscribers` table.
type SubscriberRepo struct {
	db *sql.DB
}

// NewSubscriberRepo returns a new SubscriberRepo bound to the given database.
func NewSubscriberRepo(db *sql.DB) *SubscriberRepo { return &SubscriberRepo{db: db} }

// Subscribe records an email address. Subscribing twice is a no-op, so
// the endpoint stays idempotent without surfacing duplicate-key errors.
func (r *SubscriberRepo) Subscribe(ctx context.Context, email string) error {
	const q = `INSERT INTO newsletter_subscribers (email) VALUES (?)
	           ON DUPLICATE KEY UPDATE email = email`
	_, err := r.db.ExecContext(ctx, q, email)
	return err
}

// Count returns the number of subscribers, shown on the admin dashboard.
func (r *SubscriberRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM newsletter_subscribers`).Scan(&n)
	return n, err
}
