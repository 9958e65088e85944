package repository

import (
	"context"
	"database/sql"

	"github.com/azulroute/tour-booking-api/internal/model"
)

// AdminRepo accesses the `authorized_admins` allow-list. There is no create
// path through the API; admins are provisioned directly in the database. The
// only write is a signed-in admin rotating their own password.
type AdminRepo struct {
	db *sql.DB
}

// NewAdminRepo returns a new AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// GetByEmail returns the admin record for an email, or ErrAdminNotFound.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	const q = `SELECT id, email, password_hash, created_at FROM authorized_admins WHERE email = ?`
	var a model.Admin
	err := r.db.QueryRowContext(ctx, q, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdatePassword replaces the stored bcrypt hash for an admin.
func (r *AdminRepo) UpdatePassword(ctx context.Context, email, hash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE authorized_admins SET password_hash = ? WHERE email = ?`, hash, email)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAdminNotFound
	}
	return nil
}
