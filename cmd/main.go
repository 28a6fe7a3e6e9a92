package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/airbean/airbean-api/internal/app"
	"github.com/airbean/airbean-api/internal/config"
	"github.com/airbean/airbean-api/internal/handler"
	"github.com/airbean/airbean-api/internal/postgres"
	"github.com/airbean/airbean-api/internal/repo"
	"github.com/airbean/airbean-api/internal/service"
	"github.com/airbean/airbean-api/pkg/cache"
	"github.com/airbean/airbean-api/pkg/trm"

	"github.com/joho/godotenv"
)

func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	panicIfErr("failed to run migrations", postgres.Migrate(db))

	userRepo := repo.NewUserRepo(db)
	menuRepo := repo.NewMenuRepo(db)
	cartRepo := repo.NewCartRepo(db)
	orderRepo := repo.NewOrderRepo(db)

	txManager := trm.NewManager(db)
	menuCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)

	authService := service.NewAuthService(logger, userRepo, conf.JWT, time.Now)
	catalogService := service.NewCatalogService(logger, menuRepo, menuCache)
	cartService := service.NewCartService(logger, menuRepo, cartRepo, time.Now)
	orderService := service.NewOrderService(
		logger, txManager, orderRepo, cartRepo, userRepo,
		conf.Delivery.Window, time.Now,
	)

	httpHandler := handler.NewHTTPHandler(logger, authService, catalogService, cartService, orderService)

	app := app.New(logger, conf)
	app.SetHTTPHandlers(httpHandler)
	app.SetStarters(menuCache)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
