package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sv1nxmmvt/GigaChat/internal/chat/mocks"
	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmysql"
	"github.com/sv1nxmmvt/GigaChat/internal/membership"
	mmocks "github.com/sv1nxmmvt/GigaChat/internal/membership/mocks"
)

type directoryFixture struct {
	repo    *mocks.MockRepository
	store   *mmocks.MockStore
	members *mmocks.MockService
	users   *mocks.MockUserDirectory
	blobs   *mocks.MockBlobPurger
	service Service
}

func newDirectoryFixture(t *testing.T) *directoryFixture {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	store := mmocks.NewMockStore(ctrl)
	members := mmocks.NewMockService(ctrl)
	users := mocks.NewMockUserDirectory(ctrl)
	blobs := mocks.NewMockBlobPurger(ctrl)

	guard := membership.NewGuard(store, repo)
	return &directoryFixture{
		repo:    repo,
		store:   store,
		members: members,
		users:   users,
		blobs:   blobs,
		service: NewService(repo, store, members, guard, users, common.NewKeyedMutex(), blobs),
	}
}

func (f *directoryFixture) expectCompose(chatID any, members []dbmysql.ChatMember, users []dbmysql.User) {
	f.store.EXPECT().ListForChat(gomock.Any(), chatID).Return(members, nil)
	f.users.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(users, nil)
	f.repo.EXPECT().LastMessage(gomock.Any(), chatID).Return(nil, nil)
}

func TestDirectoryService_Create(t *testing.T) {
	founder := dbmysql.User{ID: "founder-1", Username: "alice"}
	other := dbmysql.User{ID: "user-2", Username: "bob", ProfilePictureURL: "bob.png"}

	t.Run("group chat", func(t *testing.T) {
		f := newDirectoryFixture(t)
		f.users.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).
			Return([]dbmysql.User{other, founder}, nil)
		f.repo.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, chat *dbmysql.Chat, rows []dbmysql.ChatMember) error {
				assert.True(t, chat.IsGroup)
				assert.Equal(t, "founder-1", chat.CreatedByID)
				require.Len(t, rows, 2)
				for _, m := range rows {
					assert.Equal(t, m.UserID == "founder-1", m.IsAdmin)
				}
				return nil
			})
		f.expectCompose(gomock.Any(), nil, nil)

		view, err := f.service.Create(context.Background(), CreateRequest{
			Name:      "team",
			IsGroup:   true,
			MemberIDs: []string{"user-2", "user-2"},
		}, "founder-1")

		require.NoError(t, err)
		assert.Equal(t, "team", view.Name)
	})

	t.Run("direct chat takes the counterpart's name", func(t *testing.T) {
		f := newDirectoryFixture(t)
		f.users.EXPECT().GetByIDs(gomock.Any(), []string{"user-2", "founder-1"}).
			Return([]dbmysql.User{other, founder}, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.expectCompose(gomock.Any(), nil, nil)

		view, err := f.service.Create(context.Background(), CreateRequest{
			MemberIDs: []string{"user-2"},
		}, "founder-1")

		require.NoError(t, err)
		assert.Equal(t, "bob", view.Name)
		assert.Equal(t, "bob.png", view.ImageURL)
	})

	t.Run("direct chat needs exactly two members", func(t *testing.T) {
		f := newDirectoryFixture(t)

		_, err := f.service.Create(context.Background(), CreateRequest{
			MemberIDs: []string{"user-2", "user-3"},
		}, "founder-1")

		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})

	t.Run("group chat needs a name", func(t *testing.T) {
		f := newDirectoryFixture(t)

		_, err := f.service.Create(context.Background(), CreateRequest{
			IsGroup:   true,
			MemberIDs: []string{"user-2"},
		}, "founder-1")

		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})

	t.Run("unknown member", func(t *testing.T) {
		f := newDirectoryFixture(t)
		f.users.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).
			Return([]dbmysql.User{founder}, nil)

		_, err := f.service.Create(context.Background(), CreateRequest{
			Name:      "team",
			IsGroup:   true,
			MemberIDs: []string{"ghost"},
		}, "founder-1")

		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestDirectoryService_GetByID(t *testing.T) {
	t.Run("opening advances the read cursor", func(t *testing.T) {
		f := newDirectoryFixture(t)
		chat := &dbmysql.Chat{ID: "chat-1", Name: "team", IsGroup: true}
		f.repo.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsMember(gomock.Any(), "chat-1", "user-1").Return(true, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), "chat-1").Return(chat, nil)
		f.store.EXPECT().AdvanceReadCursor(gomock.Any(), "chat-1", "user-1", gomock.Any()).Return(nil)
		f.expectCompose("chat-1", nil, nil)

		view, err := f.service.GetByID(context.Background(), "chat-1", "user-1")

		require.NoError(t, err)
		assert.Equal(t, "team", view.Name)
	})

	t.Run("missing chat beats membership", func(t *testing.T) {
		f := newDirectoryFixture(t)
		f.repo.EXPECT().ChatExists(gomock.Any(), "ghost").Return(false, nil)

		_, err := f.service.GetByID(context.Background(), "ghost", "user-1")

		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestDirectoryService_ListForUser(t *testing.T) {
	f := newDirectoryFixture(t)
	joined := time.Now().UTC()
	f.repo.EXPECT().ListForUser(gomock.Any(), "user-1").
		Return([]dbmysql.Chat{{ID: "chat-1", Name: "team"}}, nil)
	f.store.EXPECT().UnreadCount(gomock.Any(), "chat-1", "user-1").Return(int64(4), nil)
	f.expectCompose("chat-1",
		[]dbmysql.ChatMember{{ChatID: "chat-1", UserID: "user-1", IsAdmin: true, JoinedAt: joined}},
		[]dbmysql.User{{ID: "user-1", Username: "alice"}})

	views, err := f.service.ListForUser(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, int64(4), views[0].UnreadCount)
	require.Len(t, views[0].Members, 1)
	assert.Equal(t, "alice", views[0].Members[0].Username)
	assert.True(t, views[0].Members[0].IsAdmin)
}

func TestDirectoryService_Update(t *testing.T) {
	t.Run("admin renames the chat", func(t *testing.T) {
		f := newDirectoryFixture(t)
		chat := &dbmysql.Chat{ID: "chat-1", Name: "old", IsGroup: true, CreatedByID: "founder-1"}
		f.repo.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "founder-1").Return(true, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), "chat-1").Return(chat, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.expectCompose("chat-1", nil, nil)

		name := "new"
		view, err := f.service.Update(context.Background(), "chat-1", UpdateRequest{Name: &name}, "founder-1")

		require.NoError(t, err)
		assert.Equal(t, "new", view.Name)
	})

	t.Run("non-admin cannot update", func(t *testing.T) {
		f := newDirectoryFixture(t)
		f.repo.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "user-2").Return(false, nil)

		name := "new"
		_, err := f.service.Update(context.Background(), "chat-1", UpdateRequest{Name: &name}, "user-2")

		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("direct chat membership is immutable", func(t *testing.T) {
		f := newDirectoryFixture(t)
		chat := &dbmysql.Chat{ID: "chat-1", IsGroup: false, CreatedByID: "founder-1"}
		f.repo.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "founder-1").Return(true, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), "chat-1").Return(chat, nil)

		_, err := f.service.Update(context.Background(), "chat-1", UpdateRequest{
			MemberIDs: []string{"user-9"},
		}, "founder-1")

		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})

	t.Run("member list diff keeps the founder", func(t *testing.T) {
		f := newDirectoryFixture(t)
		chat := &dbmysql.Chat{ID: "chat-1", IsGroup: true, CreatedByID: "founder-1"}
		f.repo.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "founder-1").Return(true, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), "chat-1").Return(chat, nil)
		f.store.EXPECT().ListForChat(gomock.Any(), "chat-1").Return([]dbmysql.ChatMember{
			{ChatID: "chat-1", UserID: "founder-1", IsAdmin: true},
			{ChatID: "chat-1", UserID: "user-2"},
		}, nil)
		// user-3 joins, user-2 leaves, the founder survives the empty list.
		f.users.EXPECT().GetByIDs(gomock.Any(), []string{"user-3"}).
			Return([]dbmysql.User{{ID: "user-3"}}, nil)
		f.members.EXPECT().AddMember(gomock.Any(), "chat-1", "user-3", false).
			Return(&dbmysql.ChatMember{ChatID: "chat-1", UserID: "user-3"}, nil)
		f.members.EXPECT().RemoveMember(gomock.Any(), "chat-1", "user-2", "founder-1").Return(nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.expectCompose("chat-1", nil, nil)

		_, err := f.service.Update(context.Background(), "chat-1", UpdateRequest{
			MemberIDs: []string{"user-3"},
		}, "founder-1")

		require.NoError(t, err)
	})
}

func TestDirectoryService_Delete(t *testing.T) {
	t.Run("cascade purges blobs", func(t *testing.T) {
		f := newDirectoryFixture(t)
		f.repo.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "founder-1").Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), "chat-1").Return([]string{"blob-1", "blob-2"}, nil)
		f.blobs.EXPECT().Delete(gomock.Any(), "blob-1").Return(nil)
		f.blobs.EXPECT().Delete(gomock.Any(), "blob-2").Return(nil)

		err := f.service.Delete(context.Background(), "chat-1", "founder-1")

		require.NoError(t, err)
	})

	t.Run("non-admin cannot delete", func(t *testing.T) {
		f := newDirectoryFixture(t)
		f.repo.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "user-2").Return(false, nil)

		err := f.service.Delete(context.Background(), "chat-1", "user-2")

		assert.ErrorIs(t, err, common.ErrForbidden)
	})
}

func TestDirectoryService_AddMember(t *testing.T) {
	t.Run("admin adds a user to a group", func(t *testing.T) {
		f := newDirectoryFixture(t)
		f.repo.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "admin-1").Return(true, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), "chat-1").
			Return(&dbmysql.Chat{ID: "chat-1", IsGroup: true}, nil)
		f.users.EXPECT().GetByIDs(gomock.Any(), []string{"user-9"}).
			Return([]dbmysql.User{{ID: "user-9"}}, nil)
		f.members.EXPECT().AddMember(gomock.Any(), "chat-1", "user-9", false).
			Return(&dbmysql.ChatMember{ChatID: "chat-1", UserID: "user-9"}, nil)

		err := f.service.AddMember(context.Background(), "chat-1", "user-9", "admin-1")

		require.NoError(t, err)
	})

	t.Run("direct chats reject new members", func(t *testing.T) {
		f := newDirectoryFixture(t)
		f.repo.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "admin-1").Return(true, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), "chat-1").
			Return(&dbmysql.Chat{ID: "chat-1", IsGroup: false}, nil)

		err := f.service.AddMember(context.Background(), "chat-1", "user-9", "admin-1")

		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newDirectoryFixture(t)
		f.repo.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "admin-1").Return(true, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), "chat-1").
			Return(&dbmysql.Chat{ID: "chat-1", IsGroup: true}, nil)
		f.users.EXPECT().GetByIDs(gomock.Any(), []string{"ghost"}).Return(nil, nil)

		err := f.service.AddMember(context.Background(), "chat-1", "ghost", "admin-1")

		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}
