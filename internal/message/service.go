package message

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmysql"
	"github.com/sv1nxmmvt/GigaChat/internal/membership"
)

// Tombstone replaces the content of a soft-deleted message. The row is
// never physically removed except by a cascading chat deletion.
const Tombstone = "[message deleted]"

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Service is the message lifecycle state machine: send, edit,
// soft-delete and paged retrieval with read-cursor advancement.
type Service interface {
	Append(ctx context.Context, chatID, senderID, content string, attachmentIDs []string) (*dbmysql.Message, error)
	Edit(ctx context.Context, messageID, requestorID, content string) (*dbmysql.Message, error)
	SoftDelete(ctx context.Context, messageID, requestorID string) error
	Page(ctx context.Context, chatID, requestorID string, offset, limit int) ([]dbmysql.Message, error)
}

type ledgerService struct {
	repo        Repository
	guard       *membership.Guard
	cursors     membership.Store
	locks       *common.KeyedMutex
	broadcaster common.Broadcaster
}

func NewService(repo Repository, guard *membership.Guard, cursors membership.Store, locks *common.KeyedMutex, broadcaster common.Broadcaster) Service {
	return &ledgerService{
		repo:        repo,
		guard:       guard,
		cursors:     cursors,
		locks:       locks,
		broadcaster: broadcaster,
	}
}

func (s *ledgerService) Append(ctx context.Context, chatID, senderID, content string, attachmentIDs []string) (*dbmysql.Message, error) {
	if strings.TrimSpace(content) == "" && len(attachmentIDs) == 0 {
		return nil, fmt.Errorf("%w: message content cannot be empty", common.ErrInvalidInput)
	}

	if err := s.guard.RequireMember(ctx, chatID, senderID); err != nil {
		return nil, err
	}

	// Appends on the same chat are serialized against each other and
	// against the chat's cascade delete.
	s.locks.Lock(chatID)
	defer s.locks.Unlock(chatID)

	if err := s.guard.RequireMember(ctx, chatID, senderID); err != nil {
		// The chat may have been deleted while we waited for the lock.
		return nil, err
	}

	msg := &dbmysql.Message{
		ID:       uuid.NewString(),
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
		SentAt:   time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, msg, attachmentIDs); err != nil {
		return nil, err
	}

	if len(attachmentIDs) > 0 {
		// Reload so the snapshot carries the linked attachments.
		full, err := s.repo.GetByID(ctx, msg.ID)
		if err != nil {
			return nil, err
		}
		msg = full
	}

	s.broadcaster.Broadcast(chatID, common.Event{
		Type:   common.EventMessageCreated,
		ChatID: chatID,
		Data:   msg,
	})
	return msg, nil
}

func (s *ledgerService) Edit(ctx context.Context, messageID, requestorID, content string) (*dbmysql.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content cannot be empty", common.ErrInvalidInput)
	}

	msg, err := s.repo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(msg.ChatID)
	defer s.locks.Unlock(msg.ChatID)

	// Re-read under the chat lock; a delete may have landed while we
	// waited, and writing over a tombstone must never happen.
	msg, err = s.repo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	// A tombstoned message is gone as far as editing is concerned.
	if msg.IsDeleted {
		return nil, fmt.Errorf("%w: message %s", common.ErrNotFound, messageID)
	}
	if msg.SenderID != requestorID {
		return nil, fmt.Errorf("%w: only the sender can edit a message", common.ErrForbidden)
	}

	if err := s.repo.UpdateContent(ctx, messageID, content); err != nil {
		return nil, err
	}
	msg.Content = content
	msg.IsEdited = true

	s.broadcaster.Broadcast(msg.ChatID, common.Event{
		Type:   common.EventMessageUpdated,
		ChatID: msg.ChatID,
		Data:   msg,
	})
	return msg, nil
}

// SoftDelete tombstones a message. The target is loaded before any
// authorization check, so a missing message is always NotFound and a
// repeat delete is AlreadyDeleted.
func (s *ledgerService) SoftDelete(ctx context.Context, messageID, requestorID string) error {
	msg, err := s.repo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	s.locks.Lock(msg.ChatID)
	defer s.locks.Unlock(msg.ChatID)

	// Re-read under the chat lock so exactly one of two racing deletes
	// reports first application.
	msg, err = s.repo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.IsDeleted {
		return fmt.Errorf("%w: message %s", common.ErrAlreadyDeleted, messageID)
	}

	if msg.SenderID != requestorID {
		admin, err := s.guard.IsAdmin(ctx, msg.ChatID, requestorID)
		if err != nil {
			return err
		}
		if !admin {
			return fmt.Errorf("%w: only the sender or a chat admin can delete a message", common.ErrForbidden)
		}
	}

	if err := s.repo.MarkDeleted(ctx, messageID, Tombstone); err != nil {
		return err
	}

	s.broadcaster.Broadcast(msg.ChatID, common.Event{
		Type:   common.EventMessageDeleted,
		ChatID: msg.ChatID,
		Data:   map[string]string{"id": messageID, "chat_id": msg.ChatID},
	})
	return nil
}

func (s *ledgerService) Page(ctx context.Context, chatID, requestorID string, offset, limit int) ([]dbmysql.Message, error) {
	if err := s.guard.RequireMember(ctx, chatID, requestorID); err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	messages, err := s.repo.Page(ctx, chatID, offset, limit)
	if err != nil {
		return nil, err
	}

	// The repository returns newest-first; flip to ascending for display.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	if len(messages) > 0 {
		if err := s.cursors.AdvanceReadCursor(ctx, chatID, requestorID, time.Now().UTC()); err != nil {
			return nil, err
		}
	}

	return messages, nil
}
