package attachment

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sv1nxmmvt/GigaChat/internal/attachment/mocks"
	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/config"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmysql"
	"github.com/sv1nxmmvt/GigaChat/internal/membership"
	mmocks "github.com/sv1nxmmvt/GigaChat/internal/membership/mocks"
)

type blobFixture struct {
	repo     *mocks.MockRepository
	blobs    *mocks.MockBlobStore
	messages *mocks.MockMessageLookup
	store    *mmocks.MockStore
	chats    *mmocks.MockChatInfo
	service  Service
}

func newBlobFixture(t *testing.T) *blobFixture {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	blobs := mocks.NewMockBlobStore(ctrl)
	messages := mocks.NewMockMessageLookup(ctrl)
	store := mmocks.NewMockStore(ctrl)
	chats := mmocks.NewMockChatInfo(ctrl)
	cnf := &config.Config{
		Upload: config.UploadConfig{MaxFileBytes: 1024, GraceMinutes: 15},
	}
	guard := membership.NewGuard(store, chats)
	return &blobFixture{
		repo:     repo,
		blobs:    blobs,
		messages: messages,
		store:    store,
		chats:    chats,
		service:  NewService(repo, blobs, messages, guard, cnf),
	}
}

func linkedTo(messageID string) *dbmysql.Attachment {
	return &dbmysql.Attachment{
		ID:         "att-1",
		MessageID:  &messageID,
		UploaderID: "user-1",
		FileName:   "photo.png",
		StorageID:  "blob-1",
		UploadedAt: time.Now().UTC().Add(-time.Hour),
	}
}

func unlinked(age time.Duration) *dbmysql.Attachment {
	return &dbmysql.Attachment{
		ID:         "att-1",
		UploaderID: "user-1",
		FileName:   "photo.png",
		StorageID:  "blob-1",
		UploadedAt: time.Now().UTC().Add(-age),
	}
}

func TestBlobService_Upload(t *testing.T) {
	t.Run("stores blob and metadata", func(t *testing.T) {
		f := newBlobFixture(t)
		f.blobs.EXPECT().
			Store(gomock.Any(), "photo.png", "image/png", "user-1", gomock.Any()).
			Return("blob-1", int64(200), nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, att *dbmysql.Attachment) error {
				assert.NotEmpty(t, att.ID)
				assert.Nil(t, att.MessageID)
				assert.Equal(t, int64(200), att.FileSize)
				return nil
			})

		att, err := f.service.Upload(context.Background(), "user-1", "photo.png", "image/png", strings.NewReader("data"))

		require.NoError(t, err)
		assert.Equal(t, "blob-1", att.StorageID)
	})

	t.Run("oversized upload is rejected and the blob purged", func(t *testing.T) {
		f := newBlobFixture(t)
		f.blobs.EXPECT().
			Store(gomock.Any(), "big.bin", "", "user-1", gomock.Any()).
			Return("blob-1", int64(1025), nil)
		f.blobs.EXPECT().Delete(gomock.Any(), "blob-1").Return(nil)

		att, err := f.service.Upload(context.Background(), "user-1", "big.bin", "", strings.NewReader("data"))

		assert.ErrorIs(t, err, common.ErrInvalidInput)
		assert.Nil(t, att)
	})

	t.Run("metadata failure purges the blob", func(t *testing.T) {
		f := newBlobFixture(t)
		f.blobs.EXPECT().
			Store(gomock.Any(), "photo.png", "", "user-1", gomock.Any()).
			Return("blob-1", int64(10), nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(common.ErrInternal)
		f.blobs.EXPECT().Delete(gomock.Any(), "blob-1").Return(nil)

		_, err := f.service.Upload(context.Background(), "user-1", "photo.png", "", strings.NewReader("data"))

		assert.Error(t, err)
	})

	t.Run("missing file name", func(t *testing.T) {
		f := newBlobFixture(t)

		_, err := f.service.Upload(context.Background(), "user-1", "", "", strings.NewReader("data"))

		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})
}

func TestBlobService_Download(t *testing.T) {
	t.Run("chat member reads a linked attachment", func(t *testing.T) {
		f := newBlobFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "att-1").Return(linkedTo("msg-1"), nil)
		f.messages.EXPECT().GetByID(gomock.Any(), "msg-1").
			Return(&dbmysql.Message{ID: "msg-1", ChatID: "chat-1"}, nil)
		f.chats.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsMember(gomock.Any(), "chat-1", "user-2").Return(true, nil)
		f.blobs.EXPECT().Retrieve(gomock.Any(), "blob-1").
			Return(io.NopCloser(strings.NewReader("data")), nil)

		att, stream, err := f.service.Download(context.Background(), "att-1", "user-2")

		require.NoError(t, err)
		defer stream.Close()
		assert.Equal(t, "photo.png", att.FileName)
	})

	t.Run("non-member cannot read a linked attachment", func(t *testing.T) {
		f := newBlobFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "att-1").Return(linkedTo("msg-1"), nil)
		f.messages.EXPECT().GetByID(gomock.Any(), "msg-1").
			Return(&dbmysql.Message{ID: "msg-1", ChatID: "chat-1"}, nil)
		f.chats.EXPECT().ChatExists(gomock.Any(), "chat-1").Return(true, nil)
		f.store.EXPECT().IsMember(gomock.Any(), "chat-1", "stranger").Return(false, nil)

		_, _, err := f.service.Download(context.Background(), "att-1", "stranger")

		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("uploader reads an unlinked attachment inside the grace window", func(t *testing.T) {
		f := newBlobFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "att-1").Return(unlinked(time.Minute), nil)
		f.blobs.EXPECT().Retrieve(gomock.Any(), "blob-1").
			Return(io.NopCloser(strings.NewReader("data")), nil)

		_, stream, err := f.service.Download(context.Background(), "att-1", "user-1")

		require.NoError(t, err)
		stream.Close()
	})

	t.Run("grace window expiry hides the attachment from its uploader", func(t *testing.T) {
		f := newBlobFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "att-1").Return(unlinked(time.Hour), nil)

		_, _, err := f.service.Download(context.Background(), "att-1", "user-1")

		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("unlinked attachment is invisible to everyone else", func(t *testing.T) {
		f := newBlobFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "att-1").Return(unlinked(time.Minute), nil)

		_, _, err := f.service.Download(context.Background(), "att-1", "user-2")

		assert.ErrorIs(t, err, common.ErrForbidden)
	})
}

func TestBlobService_Delete(t *testing.T) {
	t.Run("sender deletes a linked attachment", func(t *testing.T) {
		f := newBlobFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "att-1").Return(linkedTo("msg-1"), nil)
		f.messages.EXPECT().GetByID(gomock.Any(), "msg-1").
			Return(&dbmysql.Message{ID: "msg-1", ChatID: "chat-1", SenderID: "user-1"}, nil)
		f.repo.EXPECT().DeleteLinked(gomock.Any(), "att-1").Return(linkedTo("msg-1"), nil)
		f.blobs.EXPECT().Delete(gomock.Any(), "blob-1").Return(nil)

		err := f.service.Delete(context.Background(), "att-1", "user-1")

		require.NoError(t, err)
	})

	t.Run("chat admin may delete another member's attachment", func(t *testing.T) {
		f := newBlobFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "att-1").Return(linkedTo("msg-1"), nil)
		f.messages.EXPECT().GetByID(gomock.Any(), "msg-1").
			Return(&dbmysql.Message{ID: "msg-1", ChatID: "chat-1", SenderID: "user-1"}, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "admin-1").Return(true, nil)
		f.repo.EXPECT().DeleteLinked(gomock.Any(), "att-1").Return(linkedTo("msg-1"), nil)
		f.blobs.EXPECT().Delete(gomock.Any(), "blob-1").Return(nil)

		err := f.service.Delete(context.Background(), "att-1", "admin-1")

		require.NoError(t, err)
	})

	t.Run("plain member cannot delete someone else's attachment", func(t *testing.T) {
		f := newBlobFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "att-1").Return(linkedTo("msg-1"), nil)
		f.messages.EXPECT().GetByID(gomock.Any(), "msg-1").
			Return(&dbmysql.Message{ID: "msg-1", ChatID: "chat-1", SenderID: "user-1"}, nil)
		f.store.EXPECT().IsAdmin(gomock.Any(), "chat-1", "user-2").Return(false, nil)

		err := f.service.Delete(context.Background(), "att-1", "user-2")

		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("uploader deletes an unlinked attachment", func(t *testing.T) {
		f := newBlobFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "att-1").Return(unlinked(time.Minute), nil)
		f.repo.EXPECT().DeleteUnlinked(gomock.Any(), "att-1", "user-1").Return(unlinked(time.Minute), nil)
		f.blobs.EXPECT().Delete(gomock.Any(), "blob-1").Return(nil)

		err := f.service.Delete(context.Background(), "att-1", "user-1")

		require.NoError(t, err)
	})
}
