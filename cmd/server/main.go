package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"hearthvale/internal/adapter/archive"
	"hearthvale/internal/adapter/catalog"
	httpadapter "hearthvale/internal/adapter/http"
	metricsinmem "hearthvale/internal/adapter/metrics/inmemory"
	gormrepo "hearthvale/internal/adapter/repo/gorm"
	"hearthvale/internal/adapter/repo/memory"
	sqliterepo "hearthvale/internal/adapter/repo/sqlite"
	worldruntime "hearthvale/internal/adapter/world/runtime"
	"hearthvale/internal/app/action"
	"hearthvale/internal/app/auth"
	"hearthvale/internal/app/feed"
	"hearthvale/internal/app/ports"
	"hearthvale/internal/app/status"
	"hearthvale/internal/config"
	"hearthvale/internal/domain/economy"
	"hearthvale/internal/domain/world"
	"hearthvale/migrations"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	reg, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	st, err := buildStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	var archiveLog ports.ArchiveLog
	if cfg.ArchiveDir != "" {
		l := archive.NewLog(cfg.ArchiveDir)
		defer func() {
			if err := l.Close(); err != nil {
				logger.Warn("close archive", "err", err)
			}
		}()
		archiveLog = l
	}

	clock := world.NewClock(world.ClockConfig{StartAt: cfg.WorldStart(), TickDuration: cfg.TickDuration()})
	rooms := worldruntime.NewProvider(worldruntime.Config{
		Clock:           clock,
		Now:             time.Now,
		RoomStore:       st.rooms,
		Defaults:        worldruntime.RoomState{SettlementName: cfg.World.SettlementName},
		RefreshInterval: cfg.RoomRefresh(),
	})
	kpi := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		RegisterUC: auth.RegisterUseCase{
			Credentials: st.credentials,
			Players:     st.players,
			TxManager:   st.tx,
			RoomID:      cfg.RoomID,
			Now:         time.Now,
		},
		AuthUC: auth.VerifyUseCase{Credentials: st.credentials},
		ActionUC: action.UseCase{
			TxManager:   st.tx,
			Players:     st.players,
			ActionRepo:  st.actions,
			Feed:        st.feed,
			Archive:     archiveLog,
			Rooms:       rooms,
			Metrics:     kpi,
			Catalog:     reg,
			Logger:      logger,
			Now:         time.Now,
			MaxAttempts: cfg.MaxAttempts,
		},
		StatusUC: status.UseCase{Players: st.players, Rooms: rooms, Clock: clock, Now: time.Now},
		FeedUC:   feed.UseCase{Feed: st.feed},
		Catalog:  reg,
		KPI:      kpi,
		RoomID:   cfg.RoomID,
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	logger.Info("hearthvale server listening", "addr", cfg.Addr, "store", cfg.Store, "room_id", cfg.RoomID)
	s.Spin()
	return nil
}

func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func loadCatalog(path string) (*economy.Registry, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

type stores struct {
	players     ports.PlayerRepository
	actions     ports.ActionExecutionRepository
	feed        ports.FeedRepository
	credentials ports.CredentialRepository
	tx          ports.TxManager
	rooms       worldruntime.RoomStateStore
	close       func()
}

func buildStores(ctx context.Context, cfg config.Config) (stores, error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := gormrepo.OpenPostgres(cfg.DBDSN)
		if err != nil {
			return stores{}, fmt.Errorf("open postgres: %w", err)
		}
		var files fs.FS = migrations.Files
		if cfg.MigrationsDir != "" {
			files = os.DirFS(cfg.MigrationsDir)
		}
		if err := gormrepo.ApplyMigrations(ctx, db, files); err != nil {
			return stores{}, fmt.Errorf("apply migrations: %w", err)
		}
		return stores{
			players:     gormrepo.NewPlayerRepo(db),
			actions:     gormrepo.NewActionExecutionRepo(db),
			feed:        gormrepo.NewFeedRepo(db),
			credentials: gormrepo.NewCredentialRepo(db),
			tx:          gormrepo.NewTxManager(db),
			rooms:       worldruntime.NewGormRoomStateStore(db),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil
	case config.StoreSQLite:
		store, err := sqliterepo.Open(cfg.SQLitePath)
		if err != nil {
			return stores{}, fmt.Errorf("open sqlite: %w", err)
		}
		return stores{
			players:     sqliterepo.NewPlayerRepo(store),
			actions:     sqliterepo.NewActionExecutionRepo(store),
			feed:        sqliterepo.NewFeedRepo(store),
			credentials: sqliterepo.NewCredentialRepo(store),
			tx:          sqliterepo.NewTxManager(store),
			close:       func() { _ = store.Close() },
		}, nil
	case config.StoreMemory:
		store := memory.NewStore()
		return stores{
			players:     memory.NewPlayerRepo(store),
			actions:     memory.NewActionExecutionRepo(store),
			feed:        memory.NewFeedRepo(store),
			credentials: memory.NewCredentialRepo(store),
			tx:          memory.NewTxManager(store),
			close:       func() {},
		}, nil
	default:
		return stores{}, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
