package repository

import (
	"context"
	"database/sql"

	"github.com/azulroute/tour-booking-api/internal/model"
)

// ReviewRepo provides access to the `reviews` table. Reviews are created
// unpublished; only the publication toggle and deletion mutate them.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts a review and populates its ID and creation timestamp.
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
	const q = `INSERT INTO reviews (name, location, rating, text, published) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, rev.Name, rev.Location, rev.Rating, rev.Text, rev.Published)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM reviews WHERE id = ?`, rev.ID).Scan(&rev.CreatedAt)
}

// List returns reviews newest-first. When publishedOnly is set, unpublished
// reviews are filtered out; the public site always passes true.
func (r *ReviewRepo) List(ctx context.Context, publishedOnly bool) ([]model.Review, error) {
	q := `SELECT id, name, location, rating, text, published, created_at FROM reviews`
	if publishedOnly {
		q += ` WHERE published = 1`
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.Name, &rev.Location, &rev.Rating,
			&rev.Text, &rev.Published, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

// SetPublished toggles a review's publication flag.
func (r *ReviewRepo) SetPublished(ctx context.Context, id uint64, published bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reviews SET published = ? WHERE id = ?`, published, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also 0 when the flag already had the requested
		// value; distinguish by checking existence.
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM reviews WHERE id = ?`, id).Scan(&exists); err == sql.ErrNoRows {
			return ErrReviewNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a review.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReviewNotFound
	}
	return nil
}
