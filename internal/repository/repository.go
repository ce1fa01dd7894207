package repository

import (
	"context"
	"database/sql"
	"time"

	"prusa_thermal/internal/models"
)

// OperatorRepo stores accounts allowed to use the bridge API.
type OperatorRepo interface {
	CreateOperator(ctx context.Context, username, passwordHash string) (int, error)
	OperatorByName(ctx context.Context, username string) (models.Operator, error)
}

// StateRepo stores the single accessory snapshot row.
type StateRepo interface {
	Save(ctx context.Context, s models.AccessoryState) error
	Load(ctx context.Context) (models.AccessoryState, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.AccessoryEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.AccessoryEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Operators OperatorRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
		Operators: NewOperatorSQLite(db),
	}
}
