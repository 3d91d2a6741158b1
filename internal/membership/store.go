package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmysql"
)

// Store is the authoritative mapping of chat to user: admin flags,
// joined-at timestamps and per-member read cursors.
type Store interface {
	IsMember(ctx context.Context, chatID, userID string) (bool, error)
	IsAdmin(ctx context.Context, chatID, userID string) (bool, error)
	Get(ctx context.Context, chatID, userID string) (*dbmysql.ChatMember, error)
	Add(ctx context.Context, chatID, userID string, isAdmin bool) (*dbmysql.ChatMember, error)
	Remove(ctx context.Context, chatID, userID string) error
	SetAdmin(ctx context.Context, chatID, userID string, isAdmin bool) error
	ListForChat(ctx context.Context, chatID string) ([]dbmysql.ChatMember, error)
	AdvanceReadCursor(ctx context.Context, chatID, userID string, ts time.Time) error
	UnreadCount(ctx context.Context, chatID, userID string) (int64, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) IsMember(ctx context.Context, chatID, userID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&dbmysql.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) IsAdmin(ctx context.Context, chatID, userID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&dbmysql.ChatMember{}).
		Where("chat_id = ? AND user_id = ? AND is_admin = ?", chatID, userID, true).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) Get(ctx context.Context, chatID, userID string) (*dbmysql.ChatMember, error) {
	var member dbmysql.ChatMember
	err := s.db.WithContext(ctx).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: membership", common.ErrNotMember)
		}
		return nil, err
	}
	return &member, nil
}

func (s *gormStore) Add(ctx context.Context, chatID, userID string, isAdmin bool) (*dbmysql.ChatMember, error) {
	exists, err := s.IsMember(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: user %s in chat %s", common.ErrAlreadyMember, userID, chatID)
	}

	member := &dbmysql.ChatMember{
		ChatID:   chatID,
		UserID:   userID,
		IsAdmin:  isAdmin,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (s *gormStore) Remove(ctx context.Context, chatID, userID string) error {
	res := s.db.WithContext(ctx).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Delete(&dbmysql.ChatMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: membership", common.ErrNotMember)
	}
	return nil
}

func (s *gormStore) SetAdmin(ctx context.Context, chatID, userID string, isAdmin bool) error {
	res := s.db.WithContext(ctx).Model(&dbmysql.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Update("is_admin", isAdmin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: membership", common.ErrNotMember)
	}
	return nil
}

func (s *gormStore) ListForChat(ctx context.Context, chatID string) ([]dbmysql.ChatMember, error) {
	var members []dbmysql.ChatMember
	err := s.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("joined_at").
		Find(&members).Error
	return members, err
}

// AdvanceReadCursor moves the member's cursor forward. Older timestamps
// are rejected in the WHERE clause, so concurrent advances keep the
// monotonic-max invariant without locking.
func (s *gormStore) AdvanceReadCursor(ctx context.Context, chatID, userID string, ts time.Time) error {
	return s.db.WithContext(ctx).Model(&dbmysql.ChatMember{}).
		Where("chat_id = ? AND user_id = ? AND (last_read_at IS NULL OR last_read_at < ?)", chatID, userID, ts).
		Update("last_read_at", ts).Error
}

func (s *gormStore) UnreadCount(ctx context.Context, chatID, userID string) (int64, error) {
	member, err := s.Get(ctx, chatID, userID)
	if err != nil {
		return 0, err
	}

	// Cursor defaults to epoch zero when the member has never read.
	cursor := time.Time{}
	if member.LastReadAt != nil {
		cursor = *member.LastReadAt
	}

	var count int64
	err = s.db.WithContext(ctx).Model(&dbmysql.Message{}).
		Where("chat_id = ? AND is_deleted = ? AND sent_at > ?", chatID, false, cursor).
		Count(&count).Error
	return count, err
}
