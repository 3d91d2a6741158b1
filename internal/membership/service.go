package membership

import (
	"context"
	"fmt"
	"time"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmysql"
)

// Service applies the membership mutation rules: who may add, remove and
// promote, and the founder's exemption from removal.
type Service interface {
	AddMember(ctx context.Context, chatID, userID string, isAdmin bool) (*dbmysql.ChatMember, error)
	RemoveMember(ctx context.Context, chatID, userID, requestedBy string) error
	Promote(ctx context.Context, chatID, userID, requestedBy string) error
	AdvanceReadCursor(ctx context.Context, chatID, userID string, ts time.Time) error
	UnreadCount(ctx context.Context, chatID, userID string) (int64, error)
}

type memberService struct {
	store       Store
	chats       ChatInfo
	guard       *Guard
	broadcaster common.Broadcaster
}

func NewService(store Store, chats ChatInfo, guard *Guard, broadcaster common.Broadcaster) Service {
	return &memberService{
		store:       store,
		chats:       chats,
		guard:       guard,
		broadcaster: broadcaster,
	}
}

// AddMember is invoked by the chat directory, which has already
// authorized the requester.
func (s *memberService) AddMember(ctx context.Context, chatID, userID string, isAdmin bool) (*dbmysql.ChatMember, error) {
	member, err := s.store.Add(ctx, chatID, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(chatID, common.Event{
		Type:   common.EventMemberAdded,
		ChatID: chatID,
		Data:   common.MemberEvent{ChatID: chatID, UserID: userID, IsAdmin: isAdmin},
	})
	return member, nil
}

func (s *memberService) RemoveMember(ctx context.Context, chatID, userID, requestedBy string) error {
	if err := s.guard.RequireAdmin(ctx, chatID, requestedBy); err != nil {
		return err
	}

	founderID, err := s.chats.FounderID(ctx, chatID)
	if err != nil {
		return err
	}
	if userID == founderID {
		return fmt.Errorf("%w: the chat founder cannot be removed", common.ErrForbidden)
	}

	if err := s.store.Remove(ctx, chatID, userID); err != nil {
		return err
	}

	s.broadcaster.Broadcast(chatID, common.Event{
		Type:   common.EventMemberRemoved,
		ChatID: chatID,
		Data:   common.MemberEvent{ChatID: chatID, UserID: userID},
	})
	return nil
}

func (s *memberService) Promote(ctx context.Context, chatID, userID, requestedBy string) error {
	if err := s.guard.RequireAdmin(ctx, chatID, requestedBy); err != nil {
		return err
	}

	// Surfaces ErrNotMember for an absent target.
	if _, err := s.store.Get(ctx, chatID, userID); err != nil {
		return err
	}

	if err := s.store.SetAdmin(ctx, chatID, userID, true); err != nil {
		return err
	}

	s.broadcaster.Broadcast(chatID, common.Event{
		Type:   common.EventMemberPromoted,
		ChatID: chatID,
		Data:   common.MemberEvent{ChatID: chatID, UserID: userID, IsAdmin: true},
	})
	return nil
}

func (s *memberService) AdvanceReadCursor(ctx context.Context, chatID, userID string, ts time.Time) error {
	if _, err := s.store.Get(ctx, chatID, userID); err != nil {
		return err
	}
	return s.store.AdvanceReadCursor(ctx, chatID, userID, ts)
}

func (s *memberService) UnreadCount(ctx context.Context, chatID, userID string) (int64, error) {
	return s.store.UnreadCount(ctx, chatID, userID)
}
