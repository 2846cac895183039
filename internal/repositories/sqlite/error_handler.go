package sqlite

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fsdevblog/shortlink/internal/repositories"
)

// convertErrorType работает при включенном gorm.Config.TranslateError.
func convertErrorType(err error) error {
	if err == nil {
		return nil
	}

	var nativeErr error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		nativeErr = repositories.ErrDuplicateKey
	case errors.Is(err, gorm.ErrRecordNotFound):
		nativeErr = repositories.ErrNotFound
	default:
		nativeErr = repositories.ErrUnknown
	}
	return fmt.Errorf("%w: %s", nativeErr, err.Error())
}
