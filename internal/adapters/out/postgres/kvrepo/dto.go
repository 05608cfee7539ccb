// Package kvrepo persists opaque key/value blobs in PostgreSQL.
// It backs the cart store when several front-end instances share one cart per device key.
package kvrepo

import "time"

// EntryDTO is one stored blob.
type EntryDTO struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     []byte `gorm:"type:bytea;not null"`
	UpdatedAt time.Time
}

// TableName overrides GORM's pluralised default.
func (EntryDTO) TableName() string {
	return "local_storage"
}
