package membership

import (
	"context"
	"fmt"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
)

// ChatInfo is the slice of the chat directory the guard needs. Existence
// is checked before authorization so a missing chat is always NotFound,
// never Forbidden.
type ChatInfo interface {
	ChatExists(ctx context.Context, chatID string) (bool, error)
	FounderID(ctx context.Context, chatID string) (string, error)
}

// Guard is the single authorization policy consumed by every mutating
// operation: the ledger, the directory, the attachment service and the
// hub all go through these predicates.
type Guard struct {
	store Store
	chats ChatInfo
}

func NewGuard(store Store, chats ChatInfo) *Guard {
	return &Guard{store: store, chats: chats}
}

func (g *Guard) IsMember(ctx context.Context, chatID, userID string) (bool, error) {
	return g.store.IsMember(ctx, chatID, userID)
}

func (g *Guard) IsAdmin(ctx context.Context, chatID, userID string) (bool, error) {
	return g.store.IsAdmin(ctx, chatID, userID)
}

func (g *Guard) RequireMember(ctx context.Context, chatID, userID string) error {
	exists, err := g.chats.ChatExists(ctx, chatID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: chat %s", common.ErrNotFound, chatID)
	}

	member, err := g.store.IsMember(ctx, chatID, userID)
	if err != nil {
		return err
	}
	if !member {
		return fmt.Errorf("%w: not a member of chat %s", common.ErrForbidden, chatID)
	}
	return nil
}

func (g *Guard) RequireAdmin(ctx context.Context, chatID, userID string) error {
	exists, err := g.chats.ChatExists(ctx, chatID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: chat %s", common.ErrNotFound, chatID)
	}

	admin, err := g.store.IsAdmin(ctx, chatID, userID)
	if err != nil {
		return err
	}
	if !admin {
		return fmt.Errorf("%w: not an admin of chat %s", common.ErrForbidden, chatID)
	}
	return nil
}
