package chat

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmysql"
)

// Repository persists chat records. It also satisfies
// membership.ChatInfo so the guard can resolve existence and founders.
type Repository interface {
	Create(ctx context.Context, chat *dbmysql.Chat, members []dbmysql.ChatMember) error
	GetByID(ctx context.Context, id string) (*dbmysql.Chat, error)
	Update(ctx context.Context, chat *dbmysql.Chat) error
	Delete(ctx context.Context, id string) ([]string, error)
	ChatExists(ctx context.Context, chatID string) (bool, error)
	FounderID(ctx context.Context, chatID string) (string, error)
	ListForUser(ctx context.Context, userID string) ([]dbmysql.Chat, error)
	LastMessage(ctx context.Context, chatID string) (*dbmysql.Message, error)
}

type gormRepo struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepo{db: db}
}

func (r *gormRepo) Create(ctx context.Context, chat *dbmysql.Chat, members []dbmysql.ChatMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}
		return tx.Create(&members).Error
	})
}

func (r *gormRepo) GetByID(ctx context.Context, id string) (*dbmysql.Chat, error) {
	var chat dbmysql.Chat
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: chat %s", common.ErrNotFound, id)
		}
		return nil, err
	}
	return &chat, nil
}

func (r *gormRepo) Update(ctx context.Context, chat *dbmysql.Chat) error {
	return r.db.WithContext(ctx).Save(chat).Error
}

// Delete cascades over messages, their attachments and memberships in a
// single transaction, then removes the chat row. It returns the GridFS
// storage ids of the purged attachments so the caller can drop the
// blobs after commit.
func (r *gormRepo) Delete(ctx context.Context, id string) ([]string, error) {
	var storageIDs []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		messageIDs := tx.Model(&dbmysql.Message{}).
			Select("id").
			Where("chat_id = ?", id)

		if err := tx.Model(&dbmysql.Attachment{}).
			Where("message_id IN (?)", messageIDs).
			Pluck("storage_id", &storageIDs).Error; err != nil {
			return err
		}

		if err := tx.Where("message_id IN (?)", messageIDs).
			Delete(&dbmysql.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chat_id = ?", id).
			Delete(&dbmysql.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chat_id = ?", id).
			Delete(&dbmysql.ChatMember{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&dbmysql.Chat{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: chat %s", common.ErrNotFound, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return storageIDs, nil
}

func (r *gormRepo) ChatExists(ctx context.Context, chatID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Chat{}).
		Where("id = ?", chatID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepo) FounderID(ctx context.Context, chatID string) (string, error) {
	chat, err := r.GetByID(ctx, chatID)
	if err != nil {
		return "", err
	}
	return chat.CreatedByID, nil
}

func (r *gormRepo) ListForUser(ctx context.Context, userID string) ([]dbmysql.Chat, error) {
	var chats []dbmysql.Chat
	err := r.db.WithContext(ctx).
		Joins("JOIN chat_members ON chat_members.chat_id = chats.id").
		Where("chat_members.user_id = ?", userID).
		Order("chats.created_at DESC").
		Find(&chats).Error
	return chats, err
}

func (r *gormRepo) LastMessage(ctx context.Context, chatID string) (*dbmysql.Message, error) {
	var msg dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ? AND is_deleted = ?", chatID, false).
		Order("sent_at DESC, seq DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}
