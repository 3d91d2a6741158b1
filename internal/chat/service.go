package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmysql"
	"github.com/sv1nxmmvt/GigaChat/internal/membership"
)

// UserDirectory is the slice of the user feature the directory needs to
// resolve member ids.
type UserDirectory interface {
	GetByIDs(ctx context.Context, ids []string) ([]dbmysql.User, error)
}

// BlobPurger drops attachment blobs after a cascade delete commits.
type BlobPurger interface {
	Delete(ctx context.Context, storageID string) error
}

type CreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	IsGroup     bool     `json:"is_group"`
	MemberIDs   []string `json:"member_ids"`
}

// UpdateRequest is a patch: nil fields are left unchanged. MemberIDs,
// when present, is the full desired member list of a group chat.
type UpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	MemberIDs   []string `json:"member_ids"`
}

type MemberView struct {
	UserID            string     `json:"user_id"`
	Username          string     `json:"username"`
	ProfilePictureURL string     `json:"profile_picture_url"`
	IsAdmin           bool       `json:"is_admin"`
	JoinedAt          time.Time  `json:"joined_at"`
	LastActive        time.Time  `json:"last_active"`
	LastReadAt        *time.Time `json:"last_read_at,omitempty"`
}

type View struct {
	dbmysql.Chat
	Members     []MemberView     `json:"members"`
	LastMessage *dbmysql.Message `json:"last_message,omitempty"`
	UnreadCount int64            `json:"unread_count"`
}

// Service orchestrates chat metadata and membership mutation rules.
type Service interface {
	Create(ctx context.Context, req CreateRequest, founderID string) (*View, error)
	GetByID(ctx context.Context, chatID, userID string) (*View, error)
	ListForUser(ctx context.Context, userID string) ([]View, error)
	Update(ctx context.Context, chatID string, req UpdateRequest, requestorID string) (*View, error)
	Delete(ctx context.Context, chatID, requestorID string) error
	AddMember(ctx context.Context, chatID, userID, requestorID string) error
}

type directoryService struct {
	repo    Repository
	store   membership.Store
	members membership.Service
	guard   *membership.Guard
	users   UserDirectory
	locks   *common.KeyedMutex
	blobs   BlobPurger
}

func NewService(repo Repository, store membership.Store, members membership.Service, guard *membership.Guard, users UserDirectory, locks *common.KeyedMutex, blobs BlobPurger) Service {
	return &directoryService{
		repo:    repo,
		store:   store,
		members: members,
		guard:   guard,
		users:   users,
		locks:   locks,
		blobs:   blobs,
	}
}

func (s *directoryService) Create(ctx context.Context, req CreateRequest, founderID string) (*View, error) {
	memberIDs := dedupe(append(req.MemberIDs, founderID))

	if !req.IsGroup && len(memberIDs) != 2 {
		return nil, fmt.Errorf("%w: a direct chat has exactly two members", common.ErrInvalidInput)
	}
	if req.IsGroup && strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: a group chat needs a name", common.ErrInvalidInput)
	}

	users, err := s.users.GetByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	if len(users) != len(memberIDs) {
		return nil, fmt.Errorf("%w: one or more members do not exist", common.ErrNotFound)
	}

	chat := &dbmysql.Chat{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsGroup:     req.IsGroup,
		CreatedByID: founderID,
		CreatedAt:   time.Now().UTC(),
	}

	// A direct chat defaults its name and image to the counterpart's
	// identity; a presentation convenience, stored like any other name.
	if !chat.IsGroup && chat.Name == "" {
		for _, u := range users {
			if u.ID != founderID {
				chat.Name = u.Username
				chat.ImageURL = u.ProfilePictureURL
			}
		}
	}

	now := time.Now().UTC()
	rows := make([]dbmysql.ChatMember, 0, len(memberIDs))
	for _, id := range memberIDs {
		rows = append(rows, dbmysql.ChatMember{
			ChatID:   chat.ID,
			UserID:   id,
			IsAdmin:  id == founderID,
			JoinedAt: now,
		})
	}

	if err := s.repo.Create(ctx, chat, rows); err != nil {
		return nil, err
	}

	return s.compose(ctx, chat, 0)
}

func (s *directoryService) GetByID(ctx context.Context, chatID, userID string) (*View, error) {
	if err := s.guard.RequireMember(ctx, chatID, userID); err != nil {
		return nil, err
	}

	chat, err := s.repo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	// Opening a chat counts as reading it.
	if err := s.store.AdvanceReadCursor(ctx, chatID, userID, time.Now().UTC()); err != nil {
		return nil, err
	}

	return s.compose(ctx, chat, 0)
}

func (s *directoryService) ListForUser(ctx context.Context, userID string) ([]View, error) {
	chats, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(chats))
	for i := range chats {
		unread, err := s.store.UnreadCount(ctx, chats[i].ID, userID)
		if err != nil {
			return nil, err
		}
		view, err := s.compose(ctx, &chats[i], unread)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *directoryService) Update(ctx context.Context, chatID string, req UpdateRequest, requestorID string) (*View, error) {
	if err := s.guard.RequireAdmin(ctx, chatID, requestorID); err != nil {
		return nil, err
	}

	chat, err := s.repo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		chat.Name = *req.Name
	}
	if req.Description != nil {
		chat.Description = *req.Description
	}
	if req.ImageURL != nil {
		chat.ImageURL = *req.ImageURL
	}

	if req.MemberIDs != nil {
		if !chat.IsGroup {
			return nil, fmt.Errorf("%w: direct chat membership is immutable", common.ErrInvalidInput)
		}
		if err := s.applyMemberList(ctx, chat, dedupe(req.MemberIDs), requestorID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, chat); err != nil {
		return nil, err
	}

	return s.compose(ctx, chat, 0)
}

func (s *directoryService) Delete(ctx context.Context, chatID, requestorID string) error {
	if err := s.guard.RequireAdmin(ctx, chatID, requestorID); err != nil {
		return err
	}

	// Serialized against in-flight appends on the same chat so a
	// message cannot land after the cascade ran.
	s.locks.Lock(chatID)
	defer s.locks.Unlock(chatID)

	storageIDs, err := s.repo.Delete(ctx, chatID)
	if err != nil {
		return err
	}

	// Blob purge is best-effort once the cascade committed; a leaked
	// blob is unreachable because its metadata row is gone.
	for _, id := range storageIDs {
		if err := s.blobs.Delete(ctx, id); err != nil {
			log.Printf("failed to purge attachment blob %s: %v", id, err)
		}
	}
	return nil
}

func (s *directoryService) AddMember(ctx context.Context, chatID, userID, requestorID string) error {
	if err := s.guard.RequireAdmin(ctx, chatID, requestorID); err != nil {
		return err
	}

	chat, err := s.repo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.IsGroup {
		return fmt.Errorf("%w: direct chat membership is immutable", common.ErrInvalidInput)
	}

	users, err := s.users.GetByIDs(ctx, []string{userID})
	if err != nil {
		return err
	}
	if len(users) != 1 {
		return fmt.Errorf("%w: user %s", common.ErrNotFound, userID)
	}

	_, err = s.members.AddMember(ctx, chatID, userID, false)
	return err
}

func (s *directoryService) applyMemberList(ctx context.Context, chat *dbmysql.Chat, desired []string, requestorID string) error {
	current, err := s.store.ListForChat(ctx, chat.ID)
	if err != nil {
		return err
	}

	existing := make(map[string]bool, len(current))
	for _, m := range current {
		existing[m.UserID] = true
	}
	wanted := make(map[string]bool, len(desired))
	for _, id := range desired {
		wanted[id] = true
	}

	var toAdd []string
	for _, id := range desired {
		if !existing[id] {
			toAdd = append(toAdd, id)
		}
	}
	if len(toAdd) > 0 {
		users, err := s.users.GetByIDs(ctx, toAdd)
		if err != nil {
			return err
		}
		if len(users) != len(toAdd) {
			return fmt.Errorf("%w: one or more members do not exist", common.ErrNotFound)
		}
		for _, id := range toAdd {
			if _, err := s.members.AddMember(ctx, chat.ID, id, false); err != nil {
				return err
			}
		}
	}

	for _, m := range current {
		// The founder stays regardless of the submitted list.
		if !wanted[m.UserID] && m.UserID != chat.CreatedByID {
			if err := s.members.RemoveMember(ctx, chat.ID, m.UserID, requestorID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *directoryService) compose(ctx context.Context, chat *dbmysql.Chat, unread int64) (*View, error) {
	rows, err := s.store.ListForChat(ctx, chat.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.UserID)
	}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]dbmysql.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	members := make([]MemberView, 0, len(rows))
	for _, m := range rows {
		u := byID[m.UserID]
		members = append(members, MemberView{
			UserID:            m.UserID,
			Username:          u.Username,
			ProfilePictureURL: u.ProfilePictureURL,
			IsAdmin:           m.IsAdmin,
			JoinedAt:          m.JoinedAt,
			LastActive:        u.LastActive,
			LastReadAt:        m.LastReadAt,
		})
	}

	last, err := s.repo.LastMessage(ctx, chat.ID)
	if err != nil {
		return nil, err
	}

	return &View{
		Chat:        *chat,
		Members:     members,
		LastMessage: last,
		UnreadCount: unread,
	}, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
