package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrInUse is returned when deleting a record that others still
	// reference.
	ErrInUse = errors.New("record is still referenced")
	// ErrInvalidReference is returned when a record points at a parent
	// that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DuplicateError reports a unique constraint violation. Field is the JSON
// name of the offending field, or a comma separated list for compound keys.
type DuplicateError struct {
	Field      string
	Constraint string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("duplicate value violates %s", e.Constraint)
	}
	return fmt.Sprintf("duplicate %s", e.Field)
}

var uniqueFields = map[string]string{
	"idx_catalogs_name_manufacturer": "name,manufacturer",
	"idx_skus_sku_code":              "skuCode",
	"idx_assets_asset_tag":           "assetTag",
	"idx_users_username":             "username",
}

// translate maps driver errors onto the package's error values. A foreign
// key violation wraps fkErr, since only the caller knows whether it was
// deleting a parent or writing a child.
func translate(err error, fkErr error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &DuplicateError{Field: uniqueFields[pgErr.ConstraintName], Constraint: pgErr.ConstraintName}
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", fkErr, pgErr.ConstraintName)
		}
	}
	return err
}
