//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eslsoft/readflow/internal/adapter/repository"
	"github.com/eslsoft/readflow/internal/infrastructure/config"
	"github.com/eslsoft/readflow/internal/infrastructure/database"
	dbpkg "github.com/eslsoft/readflow/internal/infrastructure/database/db"
	"github.com/eslsoft/readflow/internal/infrastructure/server"
	"github.com/eslsoft/readflow/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	database.NewConnection,
	wire.Bind(new(dbpkg.DBTX), new(*pgxpool.Pool)),
	dbpkg.New,
)

var repositorySet = wire.NewSet(
	repository.NewContentRepository,
	repository.NewStudyWordRepository,
	repository.NewStudyPhraseRepository,
	repository.NewUnclearSentenceRepository,
	repository.NewVocabRepository,
)

var usecaseSet = wire.NewSet(
	provideVocabTier,
	provideRenderRegistry,
	usecase.NewStudyUsecase,
	usecase.NewContentUsecase,
)

var serverSet = wire.NewSet(
	provideRouter,
	server.NewLogger,
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		serverSet,
		wire.Struct(new(Container), "Logger", "Server"),
	)
	return nil, nil, nil
}
