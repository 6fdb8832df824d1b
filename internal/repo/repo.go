package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicateAssociation marks an attempt to bind the same catalog resource
// to a definition twice. Missing rows are reported as gorm.ErrRecordNotFound.
var ErrDuplicateAssociation = errors.New("duplicate association")

type GormRepo struct {
	DB *gorm.DB
}
