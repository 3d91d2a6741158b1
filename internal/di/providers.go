package di

import (
	"github.com/sv1nxmmvt/GigaChat/internal/attachment"
	"github.com/sv1nxmmvt/GigaChat/internal/chat"
	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/config"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmongo"
	"github.com/sv1nxmmvt/GigaChat/internal/hub"
	"github.com/sv1nxmmvt/GigaChat/internal/membership"
	"github.com/sv1nxmmvt/GigaChat/internal/message"
	"github.com/sv1nxmmvt/GigaChat/internal/user"
)

// Application bundles everything the server entrypoint needs.
type Application struct {
	Config            *config.Config
	Mongo             *dbmongo.MongoClient
	Hub               *hub.Hub
	UserHandler       *user.Handler
	ChatHandler       *chat.Handler
	MessageHandler    *message.Handler
	AttachmentHandler *attachment.Handler
	WSHandler         *hub.Handler
}

// Cross-package consumers declare their own small interfaces; these
// providers bind the concrete implementations to them.

func provideChatInfo(repo chat.Repository) membership.ChatInfo {
	return repo
}

func provideUserDirectory(repo user.Repository) chat.UserDirectory {
	return repo
}

func provideBlobPurger(fs *dbmongo.FileStorage) chat.BlobPurger {
	return fs
}

func provideBlobStore(fs *dbmongo.FileStorage) attachment.BlobStore {
	return fs
}

func provideMessageLookup(repo message.Repository) attachment.MessageLookup {
	return repo
}

func provideHub(store membership.Store, cnf *config.Config) *hub.Hub {
	return hub.NewHub(store, cnf.Hub.SendBufferSize)
}

func provideBroadcaster(h *hub.Hub) common.Broadcaster {
	return h
}

func provideAttachmentHandler(service attachment.Service, cnf *config.Config) *attachment.Handler {
	return attachment.NewHandler(service, cnf.Upload.MaxFileBytes)
}
