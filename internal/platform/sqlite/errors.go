package sqlite

import (
	"errors"
	"fmt"

	"github.com/phrazzld/learning-tracker/internal/store"
	"gorm.io/gorm"
)

// mapError translates gorm errors into store errors.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	default:
		return err
	}
}

// checkResult returns notFound when the statement touched no rows.
func checkResult(result *gorm.DB, notFound error) error {
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}
