package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/shanture-next/internal/config"
	"github.com/shanture-next/internal/models"
	"github.com/shanture-next/internal/provider"
	"github.com/shanture-next/internal/router"
	"github.com/shanture-next/internal/telemetry"
	"github.com/shanture-next/internal/worker"

	"gorm.io/gorm"
)

// BuildRunner 构建服务运行器
func BuildRunner(container *provider.Container, mode string) (*Runner, error) {
	if container == nil || container.Config == nil {
		return nil, errors.New("container is nil")
	}
	cfg := container.Config

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	// 队列未启用时 all 模式只跑 HTTP，worker 模式直接报错
	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		return nil, fmt.Errorf("no services initialized for mode %q", mode)
	}
	return NewRunner(services...), nil
}

// OpenDatabase 打开数据库并完成迁移，按配置写入示例商品
func OpenDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	db, err := models.OpenDB(models.DBOptions{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		LogLevel: cfg.Database.LogLevel,
		Pool: models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database failed: %w", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		_ = models.CloseDB(db)
		return nil, fmt.Errorf("migrate database failed: %w", err)
	}
	if cfg.Catalog.SeedOnStart {
		if _, err := models.SeedProducts(ctx, db); err != nil {
			_ = models.CloseDB(db)
			return nil, fmt.Errorf("seed products failed: %w", err)
		}
	}
	return db, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	cfg := opts.Config
	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(stopCtx); err != nil {
			opts.Logger.Warnw("telemetry_shutdown_failed", "error", err)
		}
	}()

	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := models.CloseDB(db); err != nil {
			opts.Logger.Warnw("database_close_failed", "error", err)
		}
	}()

	container := provider.NewContainer(cfg, db)
	defer container.Close()

	runner, err := BuildRunner(container, opts.Mode)
	if err != nil {
		return err
	}

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode, "queue_enabled", cfg.Queue.Enabled)
	return RunWithOptions(runner, opts)
}
