package repository

import (
	"context"
	"database/sql"

	"github.com/azulroute/tour-booking-api/internal/model"
)

// SiteConfigRepo provides the `site_config` key/value table used for
// free-form settings edited in the back office.
type SiteConfigRepo struct {
	db *sql.DB
}

// NewSiteConfigRepo returns a new SiteConfigRepo bound to the given database.
func NewSiteConfigRepo(db *sql.DB) *SiteConfigRepo { return &SiteConfigRepo{db: db} }

// Get returns a config value; missing keys come back as ("", false).
func (r *SiteConfigRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM site_config WHERE `+"`key`"+` = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set writes a config value, inserting or replacing as needed.
func (r *SiteConfigRepo) Set(ctx context.Context, key, value string) error {
	const q = `INSERT INTO site_config (` + "`key`" + `, value) VALUES (?, ?)
	           ON DUPLICATE KEY UPDATE value = VALUES(value)`
	_, err := r.db.ExecContext(ctx, q, key, value)
	return err
}

// All returns every config entry ordered by key.
func (r *SiteConfigRepo) All(ctx context.Context) ([]model.ConfigEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+"`key`"+`, value FROM site_config ORDER BY `+"`key`")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ConfigEntry
	for rows.Next() {
		var e model.ConfigEntry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
