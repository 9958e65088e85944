package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/azulroute/tour-booking-api/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. A reservation
// row is created once, immediately after a successful payment confirmation,
// and afterwards only its status and reminder flag may change; the total
// price and the tour snapshot are immutable. All timestamps are stored in
// UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// CreateReservation inserts a new reservation and populates the generated ID
// and creation timestamp on the provided record. Status must be a valid
// enumeration value; callers normally pass model.StatusPending.
func (r *ReservationRepo) CreateReservation(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	             (name, email, phone, tour_id, tour_name, date, participants, total_price, status, message)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.Name, res.Email, res.Phone, res.TourID, res.TourName,
		res.Date.Format("2006-01-02"), res.Participants, res.TotalPrice,
		string(res.Status), res.Message)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the row to populate the creation timestamp and defaults.
	const sel = `SELECT created_at, reminder_sent FROM reservations WHERE id = ?`
	var reminded bool
	if err := r.db.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &reminded); err != nil {
		return err
	}
	res.ReminderSent = reminded
	return nil
}

// GetByID returns one reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT id, name, email, phone, tour_id, tour_name, date, participants,
	                  total_price, status, message, reminder_sent, created_at
	           FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// UpdateStatus transitions a reservation's status, enforcing the lifecycle
// edges. The guard runs in SQL (WHERE status = current) so two concurrent
// operator actions cannot both succeed.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, to model.ReservationStatus) error {
	cur, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !cur.Status.CanTransition(to) {
		return ErrInvalidTransition
	}
	const q = `UPDATE reservations SET status = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, string(to), id, string(cur.Status))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Lost a race with another transition between read and update.
		return ErrInvalidTransition
	}
	return nil
}

// List returns reservations newest-first, optionally filtered by status.
// limit <= 0 means no limit.
func (r *ReservationRepo) List(ctx context.Context, status model.ReservationStatus, limit int) ([]model.Reservation, error) {
	q := `SELECT id, name, email, phone, tour_id, tour_name, date, participants,
	             total_price, status, message, reminder_sent, created_at
	      FROM reservations`
	args := []interface{}{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, string(status))
	}
	q += ` ORDER BY created_at DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// DueForReminder returns pending, not-yet-reminded reservations dated on the
// given calendar day.
func (r *ReservationRepo) DueForReminder(ctx context.Context, date time.Time) ([]model.Reservation, error) {
	const q = `SELECT id, name, email, phone, tour_id, tour_name, date, participants,
	                  total_price, status, message, reminder_sent, created_at
	           FROM reservations
	           WHERE date = ? AND status = ? AND reminder_sent = 0`
	rows, err := r.db.QueryContext(ctx, q, date.Format("2006-01-02"), string(model.StatusPending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// MarkReminderSent sets the reminder flag after a successful send.
func (r *ReservationRepo) MarkReminderSent(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reservations SET reminder_sent = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var res model.Reservation
	var status string
	err := row.Scan(&res.ID, &res.Name, &res.Email, &res.Phone, &res.TourID,
		&res.TourName, &res.Date, &res.Participants, &res.TotalPrice,
		&status, &res.Message, &res.ReminderSent, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	res.Status = model.ReservationStatus(status)
	return &res, nil
}
