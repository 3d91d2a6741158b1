package membership

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmysql"
	"github.com/sv1nxmmvt/GigaChat/internal/membership/mocks"
)

type memberFixture struct {
	store   *mocks.MockStore
	chats   *mocks.MockChatInfo
	bus     *captureBroadcaster
	service Service
}

type captureBroadcaster struct {
	events []common.Event
}

func (c *captureBroadcaster) Broadcast(chatID string, event common.Event) {
	c.events = append(c.events, event)
}

func newMemberFixture(t *testing.T) *memberFixture {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	chats := mocks.NewMockChatInfo(ctrl)
	bus := &captureBroadcaster{}
	guard := NewGuard(store, chats)
	return &memberFixture{
		store:   store,
		chats:   chats,
		bus:     bus,
		service: NewService(store, chats, guard, bus),
	}
}

func TestMemberService_AddMember(t *testing.T) {
	f := newMemberFixture(t)
	f.store.EXPECT().Add(gomock.Any(), "chat-1", "user-2", false).
		Return(&dbmysql.ChatMember{ChatID: "chat-1", UserID: "user-2"}, nil)

	member, err := f.service.AddMember(context.Background(), "chat-1", "user-2", false)

	require.NoError(t, err)
	assert.Equal(t, "user-2", member.UserID)
	require.Len(t, f.bus.events, 1)
	assert.Equal(t, common.EventMemberAdded, f.bus.events[0].Type)
}

func TestMemberService_AddMember_Duplicate(t *testing.T) {
	f := newMemberFixture(t)
	f.store.EXPECT().Add(gomock.Any(), "chat-1", "user-2", false).
		Return(nil, common.ErrAlreadyMember)

	_, err := f.service.AddMember(context.Background(), "chat-1", "user-2", false)

	assert.ErrorIs(t, err, common.ErrAlreadyMember)
	assert.Empty(t, f.bus.events)
}

func TestMemberService_RemoveMember(t *testing.T) {
	t.Run("admin removes a member", func(t *testing.T) {
		f := newMemberFixture(t)
		f.chats.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "admin-1").Return(true, nil)
		f.chats.EXPECT().FounderID(gomock.Any(), "chat-1").Return("founder-1", nil)
		f.store.EXPECT().Remove(gomock.Any(), "chat-1", "user-2").Return(nil)

		err := f.service.RemoveMember(context.Background(), "chat-1", "user-2", "admin-1")

		require.NoError(t, err)
		require.Len(t, f.bus.events, 1)
		assert.Equal(t, common.EventMemberRemoved, f.bus.events[0].Type)
	})

	t.Run("the founder cannot be removed", func(t *testing.T) {
		f := newMemberFixture(t)
		f.chats.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "admin-1").Return(true, nil)
		f.chats.EXPECT().FounderID(gomock.Any(), "chat-1").Return("founder-1", nil)

		err := f.service.RemoveMember(context.Background(), "chat-1", "founder-1", "admin-1")

		assert.ErrorIs(t, err, common.ErrForbidden)
		assert.Empty(t, f.bus.events)
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		f := newMemberFixture(t)
		f.chats.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "user-3").Return(false, nil)

		err := f.service.RemoveMember(context.Background(), "chat-1", "user-2", "user-3")

		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("missing chat is not found before authorization", func(t *testing.T) {
		f := newMemberFixture(t)
		f.chats.EXPECT().ChatExists(gomock.Any(), "ghost").Return(false, nil)

		err := f.service.RemoveMember(context.Background(), "ghost", "user-2", "stranger")

		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestMemberService_Promote(t *testing.T) {
	t.Run("admin promotes a member", func(t *testing.T) {
		f := newMemberFixture(t)
		f.chats.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "admin-1").Return(true, nil)
		f.store.EXPECT().Get(gomock.Any(), "chat-1", "user-2").
			Return(&dbmysql.ChatMember{ChatID: "chat-1", UserID: "user-2"}, nil)
		f.store.EXPECT().SetAdmin(gomock.Any(), "chat-1", "user-2", true).Return(nil)

		err := f.service.Promote(context.Background(), "chat-1", "user-2", "admin-1")

		require.NoError(t, err)
		require.Len(t, f.bus.events, 1)
		assert.Equal(t, common.EventMemberPromoted, f.bus.events[0].Type)
	})

	t.Run("target is not a member", func(t *testing.T) {
		f := newMemberFixture(t)
		f.chats.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "admin-1").Return(true, nil)
		f.store.EXPECT().Get(gomock.Any(), "chat-1", "ghost").Return(nil, common.ErrNotMember)

		err := f.service.Promote(context.Background(), "chat-1", "ghost", "admin-1")

		assert.ErrorIs(t, err, common.ErrNotMember)
	})
}

func TestMemberService_AdvanceReadCursor(t *testing.T) {
	f := newMemberFixture(t)
	ts := time.Now().UTC()
	f.store.EXPECT().Get(gomock.Any(), "chat-1", "user-1").
		Return(&dbmysql.ChatMember{ChatID: "chat-1", UserID: "user-1"}, nil)
	f.store.EXPECT().AdvanceReadCursor(gomock.Any(), "chat-1", "user-1", ts).Return(nil)

	err := f.service.AdvanceReadCursor(context.Background(), "chat-1", "user-1", ts)

	require.NoError(t, err)
}

func TestMemberService_AdvanceReadCursor_NotMember(t *testing.T) {
	f := newMemberFixture(t)
	f.store.EXPECT().Get(gomock.Any(), "chat-1", "stranger").Return(nil, common.ErrNotMember)

	err := f.service.AdvanceReadCursor(context.Background(), "chat-1", "stranger", time.Now())

	assert.ErrorIs(t, err, common.ErrNotMember)
}
