package main

import (
	"context"

	"github.com/coffee-bar/internal/config"
	"github.com/coffee-bar/internal/logger"
	"github.com/coffee-bar/internal/models"
	"github.com/coffee-bar/internal/repository"
	"github.com/coffee-bar/internal/service"
)

// 将配置（或内置）菜单写入 menu_entries，已存在的同名条目按配置更新
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	entries := cfg.MenuEntries()
	created, err := service.SeedMenu(context.Background(), repository.NewMenuRepository(models.DB), entries)
	if err != nil {
		stdLog.Fatalf("Failed to seed menu: %v", err)
	}
	stdLog.Printf("Menu seeded: %d entries, %d created", len(entries), created)
}
