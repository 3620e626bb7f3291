package main

import (
	"context"
	"log/slog"
	"os"

	"walkies/config"
	"walkies/internal/delivery"
	"walkies/internal/delivery/http"
	"walkies/internal/delivery/http/middleware"
	"walkies/internal/delivery/http/router/handler"
	"walkies/internal/domain/repository"
	"walkies/internal/infra/auth"
	"walkies/internal/infra/blob"
	logs "walkies/internal/infra/log"
	"walkies/internal/infra/persistence/postgres"
	"walkies/internal/infra/redis"
	"walkies/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			seedBadgeCatalogue,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		redis.NewClient,
		blob.NewFileStore,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewPetRepository,
			postgres.NewWalkRepository,
			postgres.NewBadgeRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			redis.NewRankingCache,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewPetService,
			impl.NewWalkService,
			impl.NewGamificationService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewPetHandler,
			handler.NewWalkHandler,
			handler.NewGamificationHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func seedBadgeCatalogue(ctx context.Context, badgeRepo repository.BadgeRepository, logger *slog.Logger) error {
	return postgres.SeedBadges(ctx, badgeRepo, logger)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
