package sqlite

import "gorm.io/gorm"

type BaseRepository struct {
	db *gorm.DB
}

func (r *BaseRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *BaseRepository) ExecuteTransaction(f func(tx *gorm.DB) error) error {
	return r.GetDB().Transaction(f) //nolint:wrapcheck
}
