package repository

import (
	"errors"

	"gorm.io/gorm"
)

// translate maps GORM's translated driver errors onto repository errors.
// The connection must be opened with gorm.Config.TranslateError.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
