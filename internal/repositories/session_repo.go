package repositories

import (
	"database/sql"
	"encoding/json"
	"time"

	intconfig "ridereport/internal/config"
	"ridereport/internal/domain"
	"ridereport/internal/domain/models"
)

// RideSessionRepository stores the enriched ride set of one aggregation run
// plus its amount edit-log. Sessions are short-lived working state for the
// export flow, purged by age; they are not a cross-session result cache.
type RideSessionRepository struct {
	DB *sql.DB
}

func (r RideSessionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// SaveRides replaces the ride set of a session, preserving aggregation order.
func (r RideSessionRepository) SaveRides(sessionID string, rides []models.EnrichedRide) error {
	db := r.db()

	tx, err := db.Begin()
	if err != nil {
		return domain.InternalError{Msg: "begin tx", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM ride_sessions WHERE session_id=?`, sessionID); err != nil {
		return domain.InternalError{Msg: "clear session", Err: err}
	}

	for i, ride := range rides {
		payload, err := json.Marshal(ride)
		if err != nil {
			return domain.InternalError{Msg: "encode ride", Err: err}
		}
		_, err = tx.Exec(
			`INSERT INTO ride_sessions (session_id, ride_id, position, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
			sessionID, ride.ID, i, payload, time.Now().UTC(),
		)
		if err != nil {
			return domain.InternalError{Msg: "insert ride", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Msg: "commit tx", Err: err}
	}
	return nil
}

// ListRides returns a session's rides in aggregation order.
func (r RideSessionRepository) ListRides(sessionID string) ([]models.EnrichedRide, error) {
	rows, err := r.db().Query(
		`SELECT payload FROM ride_sessions WHERE session_id=? ORDER BY position`, sessionID)
	if err != nil {
		return nil, domain.InternalError{Msg: "query session rides", Err: err}
	}
	defer rows.Close()

	var out []models.EnrichedRide
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, domain.InternalError{Msg: "scan ride", Err: err}
		}
		var ride models.EnrichedRide
		if err := json.Unmarshal(payload, &ride); err != nil {
			return nil, domain.InternalError{Msg: "decode ride", Err: err}
		}
		out = append(out, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "iterate rides", Err: err}
	}
	if len(out) == 0 {
		return nil, domain.NotFoundError{Resource: "ride session"}
	}
	return out, nil
}

// UpsertAmountEdit records or replaces a local amount override for a ride.
func (r RideSessionRepository) UpsertAmountEdit(sessionID string, edit models.AmountEdit) error {
	_, err := r.db().Exec(
		`INSERT INTO ride_amount_edits (session_id, ride_id, amount, original_amount, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE amount=VALUES(amount), updated_at=VALUES(updated_at)`,
		sessionID, edit.RideID, edit.Amount, edit.OriginalAmount, time.Now().UTC(),
	)
	if err != nil {
		return domain.InternalError{Msg: "upsert amount edit", Err: err}
	}
	return nil
}

// DeleteAmountEdit reverts an override by removing its edit-log entry.
func (r RideSessionRepository) DeleteAmountEdit(sessionID, rideID string) error {
	res, err := r.db().Exec(
		`DELETE FROM ride_amount_edits WHERE session_id=? AND ride_id=?`, sessionID, rideID)
	if err != nil {
		return domain.InternalError{Msg: "delete amount edit", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Msg: "delete amount edit", Err: err}
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "amount edit"}
	}
	return nil
}

// ListAmountEdits returns the session's edit-log keyed by ride id.
func (r RideSessionRepository) ListAmountEdits(sessionID string) (map[string]models.AmountEdit, error) {
	rows, err := r.db().Query(
		`SELECT ride_id, amount, original_amount FROM ride_amount_edits WHERE session_id=?`, sessionID)
	if err != nil {
		return nil, domain.InternalError{Msg: "query amount edits", Err: err}
	}
	defer rows.Close()

	out := map[string]models.AmountEdit{}
	for rows.Next() {
		var edit models.AmountEdit
		if err := rows.Scan(&edit.RideID, &edit.Amount, &edit.OriginalAmount); err != nil {
			return nil, domain.InternalError{Msg: "scan amount edit", Err: err}
		}
		out[edit.RideID] = edit
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "iterate amount edits", Err: err}
	}
	return out, nil
}

// PurgeOlderThan drops sessions past their working lifetime.
func (r RideSessionRepository) PurgeOlderThan(age time.Duration) error {
	cutoff := time.Now().UTC().Add(-age)
	db := r.db()
	if _, err := db.Exec(`DELETE FROM ride_amount_edits WHERE session_id IN (SELECT session_id FROM ride_sessions WHERE created_at < ?)`, cutoff); err != nil {
		return domain.InternalError{Msg: "purge amount edits", Err: err}
	}
	if _, err := db.Exec(`DELETE FROM ride_sessions WHERE created_at < ?`, cutoff); err != nil {
		return domain.InternalError{Msg: "purge sessions", Err: err}
	}
	return nil
}
