//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/sv1nxmmvt/GigaChat/internal/attachment"
	"github.com/sv1nxmmvt/GigaChat/internal/chat"
	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/config"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmongo"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmysql"
	"github.com/sv1nxmmvt/GigaChat/internal/hub"
	"github.com/sv1nxmmvt/GigaChat/internal/membership"
	"github.com/sv1nxmmvt/GigaChat/internal/message"
	"github.com/sv1nxmmvt/GigaChat/internal/user"
)

func InitializeApplication(cnf *config.Config) (*Application, error) {
	wire.Build(
		dbmysql.NewMySQL,
		dbmongo.NewMongoConnection,
		dbmongo.NewFileStorage,
		common.NewKeyedMutex,
		user.NewRepository,
		chat.NewRepository,
		membership.NewStore,
		membership.NewGuard,
		membership.NewService,
		message.NewRepository,
		message.NewService,
		chat.NewService,
		attachment.NewRepository,
		attachment.NewService,
		user.NewService,
		provideChatInfo,
		provideUserDirectory,
		provideBlobPurger,
		provideBlobStore,
		provideMessageLookup,
		provideHub,
		provideBroadcaster,
		provideAttachmentHandler,
		user.NewHandler,
		chat.NewHandler,
		message.NewHandler,
		hub.NewHandler,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
