package attachment

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmysql"
)

type Repository interface {
	Insert(ctx context.Context, att *dbmysql.Attachment) error
	GetByID(ctx context.Context, id string) (*dbmysql.Attachment, error)
	DeleteUnlinked(ctx context.Context, id, uploaderID string) (*dbmysql.Attachment, error)
	DeleteLinked(ctx context.Context, id string) (*dbmysql.Attachment, error)
}

type gormRepo struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepo{db: db}
}

func (r *gormRepo) Insert(ctx context.Context, att *dbmysql.Attachment) error {
	if err := r.db.WithContext(ctx).Create(att).Error; err != nil {
		return fmt.Errorf("insert attachment: %w", err)
	}
	return nil
}

func (r *gormRepo) GetByID(ctx context.Context, id string) (*dbmysql.Attachment, error) {
	var att dbmysql.Attachment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&att).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: attachment %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get attachment: %w", err)
	}
	return &att, nil
}

// DeleteUnlinked removes an attachment only while it is still unclaimed
// by any message and owned by uploaderID. The guarded delete loses the
// race against a concurrent send that claims the row.
func (r *gormRepo) DeleteUnlinked(ctx context.Context, id, uploaderID string) (*dbmysql.Attachment, error) {
	att, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Where("id = ? AND message_id IS NULL AND uploader_id = ?", id, uploaderID).
		Delete(&dbmysql.Attachment{})
	if res.Error != nil {
		return nil, fmt.Errorf("delete attachment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: attachment %s was claimed", common.ErrConflict, id)
	}
	return att, nil
}

func (r *gormRepo) DeleteLinked(ctx context.Context, id string) (*dbmysql.Attachment, error) {
	att, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&dbmysql.Attachment{}).Error; err != nil {
		return nil, fmt.Errorf("delete attachment: %w", err)
	}
	return att, nil
}
