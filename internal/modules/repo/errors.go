package repo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"gorm.io/gorm"
)

type violation int

const (
	violationNone violation = iota
	violationUnique
	violationForeignKey
)

// SQLSTATE codes of the integrity violations the store maps.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func classify(err error) violation {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return violationUnique
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return violationForeignKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return violationUnique
		case pgForeignKeyViolation:
			return violationForeignKey
		}
	}
	return violationNone
}

// mapError converts a persistence error into the service error taxonomy.
// entity names the table the statement targeted, for messages only.
func mapError(entity string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(fmt.Sprintf("%s is not found", entity), err)
	}
	switch classify(err) {
	case violationUnique:
		return apperr.AlreadyExists(fmt.Sprintf("%s already exists", entity), err)
	case violationForeignKey:
		return apperr.NotFound(fmt.Sprintf("%s refers to a missing entry", entity), err)
	}
	return apperr.Unhandled(fmt.Sprintf("%s persistence error", entity), err)
}
