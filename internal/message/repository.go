package message

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmysql"
)

// Repository persists ledger rows. Multi-entity writes (message insert,
// attachment linking, sender last-active touch) run in one transaction.
type Repository interface {
	Insert(ctx context.Context, msg *dbmysql.Message, attachmentIDs []string) error
	GetByID(ctx context.Context, id string) (*dbmysql.Message, error)
	UpdateContent(ctx context.Context, id, content string) error
	MarkDeleted(ctx context.Context, id, tombstone string) error
	Page(ctx context.Context, chatID string, offset, limit int) ([]dbmysql.Message, error)
}

type gormRepo struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepo{db: db}
}

func (r *gormRepo) Insert(ctx context.Context, msg *dbmysql.Message, attachmentIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		// Claim each attachment for this message. The WHERE clause only
		// matches rows that are still unlinked and owned by the sender,
		// so a foreign or already-linked id surfaces as NotFound.
		for _, attID := range attachmentIDs {
			res := tx.Model(&dbmysql.Attachment{}).
				Where("id = ? AND message_id IS NULL AND uploader_id = ?", attID, msg.SenderID).
				Update("message_id", msg.ID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: attachment %s", common.ErrNotFound, attID)
			}
		}

		return tx.Model(&dbmysql.User{}).
			Where("id = ?", msg.SenderID).
			Update("last_active", time.Now().UTC()).Error
	})
}

func (r *gormRepo) GetByID(ctx context.Context, id string) (*dbmysql.Message, error) {
	var msg dbmysql.Message
	err := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("id = ?", id).
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: message %s", common.ErrNotFound, id)
		}
		return nil, err
	}
	return &msg, nil
}

func (r *gormRepo) UpdateContent(ctx context.Context, id, content string) error {
	return r.db.WithContext(ctx).Model(&dbmysql.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":   content,
			"is_edited": true,
		}).Error
}

func (r *gormRepo) MarkDeleted(ctx context.Context, id, tombstone string) error {
	return r.db.WithContext(ctx).Model(&dbmysql.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    tombstone,
			"is_deleted": true,
		}).Error
}

// Page selects the `limit` most recent non-deleted messages by
// descending sent-at. Seq breaks ties between messages that share a
// timestamp. The caller re-sorts ascending for display.
func (r *gormRepo) Page(ctx context.Context, chatID string, offset, limit int) ([]dbmysql.Message, error) {
	var messages []dbmysql.Message
	err := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("chat_id = ? AND is_deleted = ?", chatID, false).
		Order("sent_at DESC, seq DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
