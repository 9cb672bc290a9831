package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Not every driver error passes through the dialect translator.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
