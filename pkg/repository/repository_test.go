package repository_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/intakehq/intake/pkg/repository"
)

var (
	errNotFound  = errors.New("record not found")
	errDuplicate = errors.New("record already exists")
)

func TestMapErrorNil(t *testing.T) {
	if err := repository.MapError(nil, errNotFound, errDuplicate); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestMapErrorNoRows(t *testing.T) {
	err := repository.MapError(sql.ErrNoRows, errNotFound, errDuplicate)
	if !errors.Is(err, errNotFound) {
		t.Errorf("expected not-found sentinel, got %v", err)
	}
}

func TestMapErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	err := repository.MapError(pgErr, errNotFound, errDuplicate)
	if !errors.Is(err, errDuplicate) {
		t.Errorf("expected duplicate sentinel, got %v", err)
	}
}

func TestMapErrorOtherPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"}
	err := repository.MapError(pgErr, errNotFound, errDuplicate)
	if !errors.Is(err, pgErr) {
		t.Errorf("expected passthrough, got %v", err)
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	original := errors.New("connection reset")
	err := repository.MapError(original, errNotFound, errDuplicate)
	if !errors.Is(err, original) {
		t.Errorf("expected passthrough, got %v", err)
	}
}
