// @title Blog API
// @version 1.0
// @description Posts, comments, likes and a realtime chat.
// @host localhost:3000
// @BasePath /

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "blog-backend/docs"

	"blog-backend/bootstrap"
	"blog-backend/config"
	"blog-backend/database"
	"blog-backend/internal/chat"
	"blog-backend/internal/logging"
	"blog-backend/internal/repository"
	"blog-backend/internal/repository/memstore"
	"blog-backend/internal/repository/mongostore"
	"blog-backend/internal/routes"
	"blog-backend/internal/storage"
)

func main() {
	cfg := config.LoadConfig()
	log := logging.New(cfg.LogLevel, os.Stdout)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	files, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := chat.NewHub(log)
	go hub.Run(hubCtx)

	bus, closeBus, err := openBus(cfg, hub, log)
	if err != nil {
		return err
	}
	defer closeBus()

	app := routes.NewApp(routes.Deps{
		Config:  cfg,
		Store:   store,
		Storage: files,
		Hub:     hub,
		Relay:   &chat.Relay{Repo: store.Chat, Bus: bus, HistoryLimit: cfg.ChatHistoryLimit},
		Log:     log,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("http shutdown", "err", err)
		}
	}()

	log.Info("listening", "port", cfg.Port, "store", cfg.StoreBackend, "storage", cfg.StorageBackend)
	return app.Listen(":" + cfg.Port)
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (*repository.Store, func(), error) {
	if cfg.StoreBackend == "memory" {
		log.Warn("using in-memory store, data is lost on restart")
		return memstore.New(nil), func() {}, nil
	}

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.MongoDB)
	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	log.Info("connected to mongo", "db", cfg.MongoDB)

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Error("mongo disconnect", "err", err)
		}
	}
	return mongostore.NewStore(db), closeFn, nil
}

func openStorage(ctx context.Context, cfg config.Config) (storage.Storage, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}
	return storage.NewLocal(cfg.UploadDir)
}

func openBus(cfg config.Config, hub *chat.Hub, log *slog.Logger) (chat.Bus, func(), error) {
	if cfg.NATSURL == "" {
		return chat.LocalBus{Hub: hub}, func() {}, nil
	}
	bus, err := chat.NewNATSBus(cfg.NATSURL, chat.DefaultSubject, hub, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info("chat bus on nats", "subject", chat.DefaultSubject)
	return bus, func() { _ = bus.Close() }, nil
}
