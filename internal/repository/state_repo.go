package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"prusa_thermal/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	accessoryStateRowID = 1

	upsertStateSQL = `
		INSERT INTO accessory_state (id, active, tampered, temperature_c, failure, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			active=excluded.active,
			tampered=excluded.tampered,
			temperature_c=excluded.temperature_c,
			failure=excluded.failure,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, active, tampered, temperature_c, failure, updated_at
		FROM accessory_state WHERE id=?
	`
)

// nullableTemp maps an optional temperature to a driver value.
func nullableTemp(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// Save upserts the accessory_state row (id always 1). Last write wins.
func (r *StateSQLite) Save(ctx context.Context, state models.AccessoryState) error {
	// ensure UpdatedAt is always persisted as UTC; set if zero
	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, upsertStateSQL,
		accessoryStateRowID,
		state.Active,
		state.Tampered,
		nullableTemp(state.Temperature),
		string(state.Failure),
		tsUTC,
	)
	return err
}

// Load fetches the accessory_state row. A zero state (ID=0) means no poll has been stored yet.
func (r *StateSQLite) Load(ctx context.Context) (models.AccessoryState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, accessoryStateRowID)

	var (
		s       models.AccessoryState
		temp    sql.NullFloat64
		failure string
	)
	if err := row.Scan(
		&s.ID,
		&s.Active,
		&s.Tampered,
		&temp,
		&failure,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AccessoryState{}, nil
		}
		return models.AccessoryState{}, err
	}

	if temp.Valid {
		v := temp.Float64
		s.Temperature = &v
	}
	s.Failure = models.ErrorKind(failure)
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
