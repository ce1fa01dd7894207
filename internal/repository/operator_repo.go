package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"prusa_thermal/internal/models"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrOperatorExists   = errors.New("operator already exists")
	ErrOperatorNotFound = errors.New("operator not found")
)

const (
	insertOperatorSQL     = `INSERT INTO users (username, password_hash) VALUES (?, ?)`
	selectOperatorByName  = `SELECT id, username, password_hash FROM users WHERE username = ?`
	uniqueViolationPrefix = "UNIQUE constraint failed"
)

// OperatorSQLite keeps operator accounts in the users table.
type OperatorSQLite struct {
	db *sql.DB
}

func NewOperatorSQLite(db *sql.DB) *OperatorSQLite {
	return &OperatorSQLite{db: db}
}

var _ OperatorRepo = (*OperatorSQLite)(nil)

// CreateOperator stores a new account. A taken username yields ErrOperatorExists.
func (r *OperatorSQLite) CreateOperator(ctx context.Context, username, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertOperatorSQL, username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %q", ErrOperatorExists, username)
		}
		return 0, fmt.Errorf("create operator %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create operator %q: last insert id: %w", username, err)
	}
	return int(id), nil
}

// OperatorByName loads an account. A missing username yields ErrOperatorNotFound.
func (r *OperatorSQLite) OperatorByName(ctx context.Context, username string) (models.Operator, error) {
	var op models.Operator
	err := r.db.QueryRowContext(ctx, selectOperatorByName, username).Scan(&op.ID, &op.Username, &op.PasswordHash)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Operator{}, fmt.Errorf("%w: %q", ErrOperatorNotFound, username)
	case err != nil:
		return models.Operator{}, fmt.Errorf("load operator %q: %w", username, err)
	}
	return op, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(err.Error(), uniqueViolationPrefix)
}
