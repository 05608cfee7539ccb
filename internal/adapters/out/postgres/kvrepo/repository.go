package kvrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"steakz/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKeyValueRepository implements ports.CartStorage on top of a single table.
type GormKeyValueRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormKeyValueRepository(db *gorm.DB) *GormKeyValueRepository {
	return &GormKeyValueRepository{
		db:  db,
		now: time.Now,
	}
}

// Migrate creates or updates the backing table.
func (r *GormKeyValueRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&EntryDTO{})
}

// Load returns the stored value. found is false when the key was never written.
func (r *GormKeyValueRepository) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if strings.TrimSpace(key) == "" {
		return nil, false, errs.NewValueIsRequiredError("key")
	}

	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return dto.Value, true, nil
}

// Save inserts or overwrites the value stored under key.
func (r *GormKeyValueRepository) Save(ctx context.Context, key string, data []byte) error {
	if strings.TrimSpace(key) == "" {
		return errs.NewValueIsRequiredError("key")
	}
	if data == nil {
		data = []byte{}
	}

	dto := EntryDTO{
		Key:       key,
		Value:     data,
		UpdatedAt: r.now().UTC(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&dto).Error
}
