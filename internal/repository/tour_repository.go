package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/azulroute/tour-booking-api/internal/model"
	"github.com/azulroute/tour-booking-api/internal/pricing"
)

// TourRepo provides access to the `tours` table, the database source of the
// catalog merge. Localized text lives in a JSON content column; price and
// tiers sit in their own columns so pricing queries never parse content.
type TourRepo struct {
	db *sql.DB
}

// NewTourRepo returns a new TourRepo bound to the given database.
func NewTourRepo(db *sql.DB) *TourRepo { return &TourRepo{db: db} }

// tourRow mirrors the tours table for scanning.
type tourRow struct {
	ID        string
	Content   []byte
	Price     sql.NullFloat64
	Tiers     []byte
	Duration  sql.NullString
	GroupSize sql.NullString
	Category  sql.NullString
	Images    []byte
}

// ListContents returns the database view of every tour as merge input.
func (r *TourRepo) ListContents(ctx context.Context) ([]model.TourContent, error) {
	const q = `SELECT id, content, price, pricing_tiers, duration, group_size, category, images
	           FROM tours ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TourContent
	for rows.Next() {
		var row tourRow
		if err := rows.Scan(&row.ID, &row.Content, &row.Price, &row.Tiers,
			&row.Duration, &row.GroupSize, &row.Category, &row.Images); err != nil {
			return nil, err
		}
		c, err := contentFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// GetContent returns the database view of one tour, or ErrTourNotFound.
func (r *TourRepo) GetContent(ctx context.Context, id string) (*model.TourContent, error) {
	const q = `SELECT id, content, price, pricing_tiers, duration, group_size, category, images
	           FROM tours WHERE id = ?`
	var row tourRow
	err := r.db.QueryRowContext(ctx, q, id).Scan(&row.ID, &row.Content, &row.Price,
		&row.Tiers, &row.Duration, &row.GroupSize, &row.Category, &row.Images)
	if err == sql.ErrNoRows {
		return nil, ErrTourNotFound
	}
	if err != nil {
		return nil, err
	}
	return contentFromRow(row)
}

// Upsert writes the database record for a tour, replacing all columns.
func (r *TourRepo) Upsert(ctx context.Context, c *model.TourContent) error {
	content, err := json.Marshal(localizedOnly(c))
	if err != nil {
		return err
	}
	var tiers []byte
	if c.PricingTiers != nil {
		if tiers, err = json.Marshal(c.PricingTiers); err != nil {
			return err
		}
	}
	var images []byte
	if c.Images != nil {
		if images, err = json.Marshal(c.Images); err != nil {
			return err
		}
	}
	var price interface{}
	if c.Price != nil {
		price = *c.Price
	}
	const q = `INSERT INTO tours (id, content, price, pricing_tiers, duration, group_size, category, images)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE content = VALUES(content), price = VALUES(price),
	             pricing_tiers = VALUES(pricing_tiers), duration = VALUES(duration),
	             group_size = VALUES(group_size), category = VALUES(category), images = VALUES(images)`
	_, err = r.db.ExecContext(ctx, q, c.ID, content, price, nullable(tiers),
		nullString(c.Duration), nullString(c.GroupSize), nullString(c.Category), nullable(images))
	return err
}

// Delete removes a tour row. The static defaults may still list the tour.
func (r *TourRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tours WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTourNotFound
	}
	return nil
}

// localizedContent is the shape stored in the content JSON column.
type localizedContent struct {
	Title        map[string]string   `json:"title,omitempty"`
	Subtitle     map[string]string   `json:"subtitle,omitempty"`
	Description  map[string]string   `json:"description,omitempty"`
	Highlights   map[string][]string `json:"highlights,omitempty"`
	Itinerary    map[string][]string `json:"itinerary,omitempty"`
	Included     map[string][]string `json:"included,omitempty"`
	Excluded     map[string][]string `json:"excluded,omitempty"`
	MeetingPoint map[string]string   `json:"meeting_point,omitempty"`
}

func localizedOnly(c *model.TourContent) localizedContent {
	return localizedContent{
		Title:        c.Title,
		Subtitle:     c.Subtitle,
		Description:  c.Description,
		Highlights:   c.Highlights,
		Itinerary:    c.Itinerary,
		Included:     c.Included,
		Excluded:     c.Excluded,
		MeetingPoint: c.MeetingPoint,
	}
}

func contentFromRow(row tourRow) (*model.TourContent, error) {
	c := model.TourContent{ID: row.ID}
	if len(row.Content) > 0 {
		var loc localizedContent
		if err := json.Unmarshal(row.Content, &loc); err != nil {
			return nil, err
		}
		c.Title = loc.Title
		c.Subtitle = loc.Subtitle
		c.Description = loc.Description
		c.Highlights = loc.Highlights
		c.Itinerary = loc.Itinerary
		c.Included = loc.Included
		c.Excluded = loc.Excluded
		c.MeetingPoint = loc.MeetingPoint
	}
	if row.Price.Valid {
		p := row.Price.Float64
		c.Price = &p
	}
	if len(row.Tiers) > 0 {
		// Tier keys arrive as JSON object keys, i.e. strings. Coerce them to
		// participant counts here so lookups never miss on key type.
		var raw map[string]float64
		if err := json.Unmarshal(row.Tiers, &raw); err != nil {
			return nil, err
		}
		c.PricingTiers = pricing.CanonicalTiers(raw)
	}
	if len(row.Images) > 0 {
		if err := json.Unmarshal(row.Images, &c.Images); err != nil {
			return nil, err
		}
	}
	c.Duration = row.Duration.String
	c.GroupSize = row.GroupSize.String
	c.Category = row.Category.String
	return &c, nil
}

func nullable(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
